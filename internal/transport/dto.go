package transport

import (
	"time"

	"pastafresca-be/internal/coupon"
	"pastafresca-be/internal/product"
	"pastafresca-be/internal/purchase"
)

// --- Requests ---

type CheckoutItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items          []CheckoutItemRequest `json:"items"`
	BuyerName      string                `json:"buyer_name"`
	BuyerEmail     string                `json:"buyer_email"`
	BuyerPhone     string                `json:"buyer_phone"`
	BuyerAddress   string                `json:"buyer_address"`
	DeliveryOption string                `json:"delivery_option"`
	DeliverySlot   string                `json:"delivery_slot"`
	Comments       string                `json:"comments"`
	CouponCode     string                `json:"coupon_code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateOrderStatusRequest struct {
	FulfillmentStatus string `json:"fulfillment_status"`
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Available   bool    `json:"available"`
	Stock       int     `json:"stock"`
	TrackStock  bool    `json:"track_stock"`
}

type CouponRequest struct {
	Code         string     `json:"code"`
	DiscountType string     `json:"discount_type"`
	Value        float64    `json:"value"`
	Active       bool       `json:"active"`
	ExpiresAt    *time.Time `json:"expires_at"`
	MaxUses      *int       `json:"max_uses"`
}

// --- Responses ---

type CheckoutResponse struct {
	PurchaseID       string `json:"purchase_id"`
	PreferenceID     string `json:"preference_id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Available   bool    `json:"available"`
	Stock       int     `json:"stock"`
	TrackStock  bool    `json:"track_stock"`
}

type CouponResponse struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	DiscountType string     `json:"discount_type"`
	Value        float64    `json:"value"`
	Active       bool       `json:"active"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	MaxUses      *int       `json:"max_uses,omitempty"`
	UsageCount   int        `json:"usage_count"`
}

type LineItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type CouponSnapshotResponse struct {
	Code           string  `json:"code"`
	DiscountType   string  `json:"discount_type"`
	Value          float64 `json:"value"`
	DiscountAmount float64 `json:"discount_amount"`
}

type OrderResponse struct {
	ID                string                  `json:"id"`
	BuyerName         string                  `json:"buyer_name"`
	BuyerEmail        string                  `json:"buyer_email"`
	BuyerPhone        string                  `json:"buyer_phone,omitempty"`
	BuyerAddress      string                  `json:"buyer_address,omitempty"`
	Items             []LineItemResponse      `json:"items"`
	TotalAmount       float64                 `json:"total_amount"`
	DiscountAmount    float64                 `json:"discount_amount"`
	FinalAmount       float64                 `json:"final_amount"`
	Coupon            *CouponSnapshotResponse `json:"coupon,omitempty"`
	PaymentStatus     string                  `json:"payment_status"`
	FulfillmentStatus string                  `json:"fulfillment_status"`
	PaymentID         string                  `json:"payment_id,omitempty"`
	DeliveryOption    string                  `json:"delivery_option"`
	DeliverySlot      string                  `json:"delivery_slot,omitempty"`
	Comments          string                  `json:"comments,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// --- Mapping ---

func toProductResponse(p product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Available:   p.Available,
		Stock:       p.Stock,
		TrackStock:  p.TrackStock,
	}
}

func toCouponResponse(c coupon.Coupon) CouponResponse {
	return CouponResponse{
		ID:           c.ID,
		Code:         c.Code,
		DiscountType: string(c.DiscountType),
		Value:        c.Value,
		Active:       c.Active,
		ExpiresAt:    c.ExpiresAt,
		MaxUses:      c.MaxUses,
		UsageCount:   c.UsageCount,
	}
}

func toOrderResponse(p *purchase.Purchase) OrderResponse {
	items := make([]LineItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, LineItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			ImageURL:  it.ImageURL,
		})
	}

	resp := OrderResponse{
		ID:                p.ID,
		BuyerName:         p.BuyerName,
		BuyerEmail:        p.BuyerEmail,
		BuyerPhone:        p.BuyerPhone,
		BuyerAddress:      p.BuyerAddress,
		Items:             items,
		TotalAmount:       p.TotalAmount,
		DiscountAmount:    p.DiscountAmount,
		FinalAmount:       p.FinalAmount,
		PaymentStatus:     string(p.PaymentStatus),
		FulfillmentStatus: string(p.FulfillmentStatus),
		PaymentID:         p.PaymentID,
		DeliveryOption:    string(p.DeliveryOption),
		DeliverySlot:      p.DeliverySlot,
		Comments:          p.Comments,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}

	if p.Coupon != nil {
		resp.Coupon = &CouponSnapshotResponse{
			Code:           p.Coupon.Code,
			DiscountType:   string(p.Coupon.DiscountType),
			Value:          p.Coupon.Value,
			DiscountAmount: p.Coupon.DiscountAmount,
		}
	}

	return resp
}
