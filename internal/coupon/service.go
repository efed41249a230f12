package coupon

import (
	"context"
	"strings"
	"time"

	"pastafresca-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// ValidateCode resolves a code to a usable coupon, or a typed error
	// explaining why it cannot be applied.
	ValidateCode(ctx context.Context, code string) (*Coupon, error)
	MarkUsed(ctx context.Context, id string) error
	Create(ctx context.Context, c Coupon) (Coupon, error)
	List(ctx context.Context) ([]Coupon, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) ValidateCode(ctx context.Context, code string) (*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ValidateCode"),
		zap.String("code", code),
	)

	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCode
	}

	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		log.Error("failed to fetch coupon", zap.Error(err))
		return nil, err
	}
	if c == nil {
		log.Warn("coupon code not found")
		return nil, ErrCouponNotFound
	}

	if err := c.Usable(s.now()); err != nil {
		log.Warn("coupon not usable", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func (s *service) MarkUsed(ctx context.Context, id string) error {
	return s.repo.MarkUsed(ctx, id)
}

func (s *service) Create(ctx context.Context, c Coupon) (Coupon, error) {
	if strings.TrimSpace(c.Code) == "" {
		return Coupon{}, ErrEmptyCode
	}
	if c.Value <= 0 {
		return Coupon{}, ErrInvalidValue
	}

	return s.repo.Create(ctx, c)
}

func (s *service) List(ctx context.Context) ([]Coupon, error) {
	return s.repo.List(ctx)
}
