package payment

import (
	"context"
	"net/http"
)

type Gateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*PreferenceResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentInfo, error)
	VerifyWebhookSecret(r *http.Request) error
}
