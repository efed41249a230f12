package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pastafresca-be/internal/logger"
	"pastafresca-be/internal/metrics"
	"pastafresca-be/internal/payment"
	"pastafresca-be/internal/purchase"

	"go.uber.org/zap"
)

// Notification is the JSON shape Mercado Pago posts. Only the payment id is
// trusted; the authoritative status is fetched back from the gateway.
type Notification struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Data   struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

type Handler struct {
	purchases purchase.Service
	gateway   payment.Gateway
}

func NewHandler(purchases purchase.Service, gateway payment.Gateway) *Handler {
	return &Handler{
		purchases: purchases,
		gateway:   gateway,
	}
}

// PaymentWebhook handles POST /webhook/payment. Per gateway convention it
// answers 200 even when reconciliation fails internally, so the provider does
// not retry forever for orders that will never exist.
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	if err := h.gateway.VerifyWebhookSecret(r); err != nil {
		log.Warn("webhook secret mismatch", zap.Error(err))
		http.Error(w, "invalid webhook secret", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	if n.Type != "payment" || n.Data.ID.String() == "" {
		// merchant_order and other topics are not reconciled here.
		w.WriteHeader(http.StatusOK)
		return
	}

	log = log.With(
		zap.String("payment_id", n.Data.ID.String()),
		zap.String("action", n.Action),
	)
	metrics.WebhookNotifications.Inc()
	log.Info("payment notification received")

	if err := h.purchases.Reconcile(r.Context(), n.Data.ID.String()); err != nil {
		if errors.Is(err, purchase.ErrUnknownOrder) {
			log.Warn("notification for unknown purchase dropped", zap.Error(err))
		} else {
			log.Error("failed to reconcile payment", zap.Error(err))
		}
	}

	w.WriteHeader(http.StatusOK)
}
