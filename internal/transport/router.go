package transport

import (
	"net/http"

	"pastafresca-be/internal/logger"
	"pastafresca-be/internal/middleware"
	"pastafresca-be/internal/payment/webhook"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the full HTTP surface: public storefront routes, the
// payment webhook and the token-guarded admin area.
func NewRouter(h *Handler, wh *webhook.Handler, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/api/products", h.ListProducts)
	r.Get("/api/coupons/validate", h.ValidateCoupon)
	r.Post("/api/checkout", h.Checkout)

	r.Post("/webhook/payment", wh.PaymentWebhook)

	r.Post("/api/admin/login", h.Login)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminOnly(jwtSecret))

		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{id}", h.GetOrder)
		r.Patch("/orders/{id}/status", h.UpdateOrderStatus)

		r.Post("/products", h.CreateProduct)
		r.Put("/products/{id}", h.UpdateProduct)

		r.Get("/coupons", h.ListCoupons)
		r.Post("/coupons", h.CreateCoupon)

		r.Get("/metrics", h.Metrics)
	})

	return r
}
