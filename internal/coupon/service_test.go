package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *MockRepository) MarkUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Create(ctx context.Context, c Coupon) (Coupon, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(Coupon), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Coupon), args.Error(1)
}

func intPtr(i int) *int { return &i }

func TestService_ValidateCode(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newSvc := func(repo Repository) *service {
		return &service{repo: repo, now: func() time.Time { return now }}
	}

	t.Run("EmptyCode", func(t *testing.T) {
		svc := newSvc(new(MockRepository))
		_, err := svc.ValidateCode(ctx, "  ")
		assert.ErrorIs(t, err, ErrEmptyCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "NADA").Return(nil, nil)

		_, err := newSvc(repo).ValidateCode(ctx, "NADA")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("Inactive", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "PASTA10").Return(&Coupon{Code: "PASTA10", Active: false}, nil)

		_, err := newSvc(repo).ValidateCode(ctx, "PASTA10")
		assert.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("Expired", func(t *testing.T) {
		past := now.Add(-time.Hour)
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "VIEJO").Return(&Coupon{Code: "VIEJO", Active: true, ExpiresAt: &past}, nil)

		_, err := newSvc(repo).ValidateCode(ctx, "VIEJO")
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("Exhausted", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "AGOTADO").Return(&Coupon{
			Code: "AGOTADO", Active: true, MaxUses: intPtr(5), UsageCount: 5,
		}, nil)

		_, err := newSvc(repo).ValidateCode(ctx, "AGOTADO")
		assert.ErrorIs(t, err, ErrCouponExhausted)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "PASTA10").Return(&Coupon{
			ID: "c1", Code: "PASTA10", Active: true,
			DiscountType: DiscountPercentage, Value: 10,
		}, nil)

		c, err := newSvc(repo).ValidateCode(ctx, "PASTA10")
		assert.NoError(t, err)
		assert.Equal(t, "c1", c.ID)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "PASTA10").Return(nil, errors.New("db error"))

		_, err := newSvc(repo).ValidateCode(ctx, "PASTA10")
		assert.Error(t, err)
	})
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(new(MockRepository))
	ctx := context.Background()

	_, err := svc.Create(ctx, Coupon{Code: "", Value: 10})
	assert.ErrorIs(t, err, ErrEmptyCode)

	_, err = svc.Create(ctx, Coupon{Code: "PASTA10", Value: 0})
	assert.ErrorIs(t, err, ErrInvalidValue)
}
