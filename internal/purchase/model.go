package purchase

import (
	"time"

	"pastafresca-be/internal/coupon"
)

// PaymentStatus mirrors the gateway's view of the purchase.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentApproved  PaymentStatus = "approved"
	PaymentRejected  PaymentStatus = "rejected"
	PaymentCancelled PaymentStatus = "cancelled"
)

// FulfillmentStatus is the merchant's operational pipeline, independent of
// payment status. Only the first approval auto-advances it.
type FulfillmentStatus string

const (
	FulfillmentPendientePago    FulfillmentStatus = "pendiente_pago"
	FulfillmentEnPreparacion    FulfillmentStatus = "en_preparacion"
	FulfillmentListoParaEntrega FulfillmentStatus = "listo_para_entrega"
	FulfillmentEnCamino         FulfillmentStatus = "en_camino"
	FulfillmentEntregado        FulfillmentStatus = "entregado"
	FulfillmentCancelado        FulfillmentStatus = "cancelado"
)

type DeliveryOption string

const (
	DeliveryHome   DeliveryOption = "delivery"
	DeliveryPickup DeliveryOption = "pickup"
)

// LineItem is a snapshot taken at checkout time. Prices here are the
// discounted unit prices actually charged; they are never recomputed from the
// catalog after creation.
type LineItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice float64
	ImageURL  string
}

// CouponSnapshot denormalizes the applied coupon so later coupon edits cannot
// alter a historical purchase.
type CouponSnapshot struct {
	CouponID       string
	Code           string
	DiscountType   coupon.DiscountType
	Value          float64
	DiscountAmount float64
}

type Purchase struct {
	ID                string // also the external reference sent to the gateway
	UserID            *string
	BuyerName         string
	BuyerEmail        string
	BuyerPhone        string
	BuyerAddress      string
	Items             []LineItem
	TotalAmount       float64
	DiscountAmount    float64
	FinalAmount       float64
	Coupon            *CouponSnapshot
	PaymentStatus     PaymentStatus
	FulfillmentStatus FulfillmentStatus
	PaymentID         string
	DeliveryOption    DeliveryOption
	DeliverySlot      string
	Comments          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CheckoutItem struct {
	ProductID string
	Quantity  int
}

type CheckoutInput struct {
	Items          []CheckoutItem
	BuyerName      string
	BuyerEmail     string
	BuyerPhone     string
	BuyerAddress   string
	UserID         *string
	DeliveryOption DeliveryOption
	DeliverySlot   string
	Comments       string
	CouponCode     string
}

type CheckoutResult struct {
	PurchaseID       string
	PreferenceID     string
	InitPoint        string
	SandboxInitPoint string
}
