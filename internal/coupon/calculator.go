package coupon

// LineInput is one cart line with its authoritative unit price.
type LineInput struct {
	Quantity  int
	UnitPrice float64
}

// LinePricing is the per-line outcome of applying a coupon.
type LinePricing struct {
	OriginalPrice   float64
	DiscountPerUnit float64
	FinalPrice      float64
}

type PricingResult struct {
	Lines          []LinePricing
	TotalAmount    float64
	DiscountAmount float64
	FinalAmount    float64
}

// Apply computes per-line discounts and the payable total for an optional
// coupon. Percentage coupons discount each unit uniformly; fixed coupons are
// distributed across lines proportionally to each line's share of the
// pre-discount total, then divided by quantity. A line's final price never
// goes below zero.
func Apply(items []LineInput, c *Coupon) PricingResult {
	result := PricingResult{
		Lines: make([]LinePricing, len(items)),
	}

	for i, item := range items {
		result.Lines[i] = LinePricing{
			OriginalPrice: item.UnitPrice,
			FinalPrice:    item.UnitPrice,
		}
		result.TotalAmount += item.UnitPrice * float64(item.Quantity)
	}

	if c == nil {
		result.FinalAmount = result.TotalAmount
		return result
	}

	switch c.DiscountType {
	case DiscountPercentage:
		for i, item := range items {
			discount := item.UnitPrice * c.Value / 100
			if discount > item.UnitPrice {
				discount = item.UnitPrice
			}
			result.Lines[i].DiscountPerUnit = discount
			result.Lines[i].FinalPrice = item.UnitPrice - discount
			result.DiscountAmount += discount * float64(item.Quantity)
		}

	case DiscountFixed:
		// Proportional split is undefined on a zero total; leave everything
		// undiscounted rather than divide by zero.
		if result.TotalAmount <= 0 {
			break
		}
		for i, item := range items {
			lineTotal := item.UnitPrice * float64(item.Quantity)
			lineDiscount := c.Value * lineTotal / result.TotalAmount

			discountPerUnit := 0.0
			if item.Quantity > 0 {
				discountPerUnit = lineDiscount / float64(item.Quantity)
			}
			if discountPerUnit > item.UnitPrice {
				discountPerUnit = item.UnitPrice
			}

			result.Lines[i].DiscountPerUnit = discountPerUnit
			result.Lines[i].FinalPrice = item.UnitPrice - discountPerUnit
			result.DiscountAmount += discountPerUnit * float64(item.Quantity)
		}
	}

	result.FinalAmount = result.TotalAmount - result.DiscountAmount
	return result
}
