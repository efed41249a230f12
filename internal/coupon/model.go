package coupon

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID           string
	Code         string
	DiscountType DiscountType
	Value        float64
	Active       bool
	ExpiresAt    *time.Time
	MaxUses      *int
	UsageCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Usable reports why a coupon cannot be applied at the given moment, or nil.
func (c *Coupon) Usable(now time.Time) error {
	if !c.Active {
		return ErrCouponInactive
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return ErrCouponExpired
	}
	if c.MaxUses != nil && c.UsageCount >= *c.MaxUses {
		return ErrCouponExhausted
	}
	return nil
}
