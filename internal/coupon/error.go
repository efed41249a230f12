package coupon

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyCode    = errors.New("coupon code cannot be empty")
	ErrInvalidValue = errors.New("coupon value must be positive")

	// -- Resource State --
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
)
