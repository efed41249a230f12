package coupon

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	MarkUsed(ctx context.Context, id string) error
	Create(ctx context.Context, c Coupon) (Coupon, error)
	List(ctx context.Context) ([]Coupon, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	query := `
		SELECT id, code, discount_type, value, active, expires_at, max_uses, usage_count, created_at, updated_at
		FROM coupons
		WHERE lower(code) = lower($1)
	`

	var c Coupon
	err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(code)).Scan(
		&c.ID, &c.Code, &c.DiscountType, &c.Value, &c.Active,
		&c.ExpiresAt, &c.MaxUses, &c.UsageCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) MarkUsed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE coupons
		SET usage_count = usage_count + 1, updated_at = now()
		WHERE id = $1
	`, id)
	return err
}

func (r *repository) Create(ctx context.Context, c Coupon) (Coupon, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO coupons (id, code, discount_type, value, active, expires_at, max_uses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`,
		c.ID, c.Code, c.DiscountType, c.Value, c.Active, c.ExpiresAt, c.MaxUses,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	return c, err
}

func (r *repository) List(ctx context.Context) ([]Coupon, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, discount_type, value, active, expires_at, max_uses, usage_count, created_at, updated_at
		FROM coupons
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []Coupon
	for rows.Next() {
		var c Coupon
		if err := rows.Scan(
			&c.ID, &c.Code, &c.DiscountType, &c.Value, &c.Active,
			&c.ExpiresAt, &c.MaxUses, &c.UsageCount, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}

	return coupons, rows.Err()
}
