package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pastafresca-be/internal/coupon"
	"pastafresca-be/internal/logger"
	"pastafresca-be/internal/metrics"
	"pastafresca-be/internal/product"
	"pastafresca-be/internal/purchase"
	"pastafresca-be/internal/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	products  product.Service
	coupons   coupon.Service
	purchases purchase.Service
	users     user.Service
}

func NewHandler(products product.Service, coupons coupon.Service, purchases purchase.Service, users user.Service) *Handler {
	return &Handler{
		products:  products,
		coupons:   coupons,
		purchases: purchases,
		users:     users,
	}
}

// --- Public storefront ---

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), true)
	if err != nil {
		WriteJSONError(w, "failed to fetch products", http.StatusInternalServerError)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	c, err := h.coupons.ValidateCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, coupon.ErrEmptyCode),
			errors.Is(err, coupon.ErrCouponInactive),
			errors.Is(err, coupon.ErrCouponExpired),
			errors.Is(err, coupon.ErrCouponExhausted):
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, coupon.ErrCouponNotFound):
			WriteJSONError(w, err.Error(), http.StatusNotFound)
		default:
			WriteJSONError(w, "failed to validate coupon", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, http.StatusOK, toCouponResponse(*c))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	input := purchase.CheckoutInput{
		BuyerName:      req.BuyerName,
		BuyerEmail:     req.BuyerEmail,
		BuyerPhone:     req.BuyerPhone,
		BuyerAddress:   req.BuyerAddress,
		DeliveryOption: purchase.DeliveryOption(req.DeliveryOption),
		DeliverySlot:   req.DeliverySlot,
		Comments:       req.Comments,
		CouponCode:     req.CouponCode,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, purchase.CheckoutItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	result, err := h.purchases.Checkout(r.Context(), input)
	if err != nil {
		h.writeCheckoutError(w, log, err)
		return
	}

	WriteJSON(w, http.StatusCreated, CheckoutResponse{
		PurchaseID:       result.PurchaseID,
		PreferenceID:     result.PreferenceID,
		InitPoint:        result.InitPoint,
		SandboxInitPoint: result.SandboxInitPoint,
	})
}

func (h *Handler) writeCheckoutError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, purchase.ErrEmptyCart),
		errors.Is(err, purchase.ErrMissingEmail),
		errors.Is(err, purchase.ErrInvalidQuantity),
		errors.Is(err, coupon.ErrEmptyCode),
		errors.Is(err, coupon.ErrCouponNotFound),
		errors.Is(err, coupon.ErrCouponInactive),
		errors.Is(err, coupon.ErrCouponExpired),
		errors.Is(err, coupon.ErrCouponExhausted):
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, product.ErrNotFound):
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, product.ErrUnavailable),
		errors.Is(err, product.ErrInsufficientStock):
		WriteJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, purchase.ErrGateway):
		WriteJSONError(w, purchase.ErrGateway.Error(), http.StatusBadGateway)
	default:
		log.Error("checkout failed", zap.Error(err))
		WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

// --- Admin ---

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingCredentials):
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidCredentials):
			WriteJSONError(w, err.Error(), http.StatusUnauthorized)
		default:
			WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := parseInt32(r.URL.Query().Get("limit"), 0)
	offset := parseInt32(r.URL.Query().Get("offset"), 0)

	orders, err := h.purchases.List(r.Context(), limit, offset)
	if err != nil {
		WriteJSONError(w, "failed to fetch orders", http.StatusInternalServerError)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, p := range orders {
		resp = append(resp, toOrderResponse(p))
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.purchases.GetByExternalReference(r.Context(), id)
	if err != nil {
		if errors.Is(err, purchase.ErrNotFound) {
			WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		WriteJSONError(w, "failed to fetch order", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, http.StatusOK, toOrderResponse(p))
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	err := h.purchases.UpdateFulfillmentStatus(r.Context(), id, purchase.FulfillmentStatus(req.FulfillmentStatus))
	if err != nil {
		switch {
		case errors.Is(err, purchase.ErrInvalidStatus):
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, purchase.ErrNotFound):
			WriteJSONError(w, err.Error(), http.StatusNotFound)
		default:
			WriteJSONError(w, "failed to update order", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"id":                 id,
		"fulfillment_status": req.FulfillmentStatus,
	})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	created, err := h.products.Create(r.Context(), product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
		Stock:       req.Stock,
		TrackStock:  req.TrackStock,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrEmptyName), errors.Is(err, product.ErrInvalidPrice):
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			WriteJSONError(w, "failed to create product", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, toProductResponse(created))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	p := product.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
		Stock:       req.Stock,
		TrackStock:  req.TrackStock,
	}

	if err := h.products.Update(r.Context(), p); err != nil {
		switch {
		case errors.Is(err, product.ErrEmptyName), errors.Is(err, product.ErrInvalidPrice):
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, product.ErrNotFound):
			WriteJSONError(w, err.Error(), http.StatusNotFound)
		default:
			WriteJSONError(w, "failed to update product", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	created, err := h.coupons.Create(r.Context(), coupon.Coupon{
		Code:         req.Code,
		DiscountType: coupon.DiscountType(req.DiscountType),
		Value:        req.Value,
		Active:       req.Active,
		ExpiresAt:    req.ExpiresAt,
		MaxUses:      req.MaxUses,
	})
	if err != nil {
		switch {
		case errors.Is(err, coupon.ErrEmptyCode), errors.Is(err, coupon.ErrInvalidValue):
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			WriteJSONError(w, "failed to create coupon", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, toCouponResponse(created))
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, metrics.Snapshot())
}

func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		WriteJSONError(w, "failed to fetch coupons", http.StatusInternalServerError)
		return
	}

	resp := make([]CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		resp = append(resp, toCouponResponse(c))
	}
	WriteJSON(w, http.StatusOK, resp)
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(n)
}
