package coupon

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func couponColumns() []string {
	return []string{
		"id", "code", "discount_type", "value", "active",
		"expires_at", "max_uses", "usage_count", "created_at", "updated_at",
	}
}

func TestRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(couponColumns()).AddRow(
			"c1", "PASTA10", "percentage", 10.0, true,
			nil, nil, 0, time.Now(), time.Now(),
		)

		mock.ExpectQuery(`SELECT .* FROM coupons WHERE lower\(code\) = lower\(\$1\)`).
			WithArgs("PASTA10").
			WillReturnRows(rows)

		c, err := repo.GetByCode(ctx, "PASTA10")
		assert.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, DiscountPercentage, c.DiscountType)
		assert.Equal(t, 10.0, c.Value)
	})

	t.Run("TrimsInput", func(t *testing.T) {
		rows := sqlmock.NewRows(couponColumns()).AddRow(
			"c1", "PASTA10", "percentage", 10.0, true,
			nil, nil, 0, time.Now(), time.Now(),
		)

		mock.ExpectQuery(`SELECT .* FROM coupons`).
			WithArgs("PASTA10").
			WillReturnRows(rows)

		c, err := repo.GetByCode(ctx, "  PASTA10  ")
		assert.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM coupons`).
			WillReturnError(sql.ErrNoRows)

		c, err := repo.GetByCode(ctx, "NADA")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestRepository_MarkUsed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE coupons SET usage_count = usage_count \+ 1`).
			WithArgs("c1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkUsed(context.Background(), "c1"))
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`UPDATE coupons`).
			WillReturnError(errors.New("db error"))

		assert.Error(t, repo.MarkUsed(context.Background(), "c1"))
	})
}
