package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pastafresca-be/internal/logger"

	"go.uber.org/zap"
)

const mpBaseURL = "https://api.mercadopago.com"

type mercadoPagoGateway struct {
	accessToken   string
	httpClient    *http.Client
	successURL    string
	failureURL    string
	pendingURL    string
	notifyURL     string
	webhookSecret string
}

// ----------------- Constructor -----------------

// NewMercadoPagoGateway builds the hosted-checkout adapter. publicBaseURL is
// the storefront's public origin; redirect and notification URLs are fixed
// paths under it.
func NewMercadoPagoGateway(accessToken, publicBaseURL, webhookSecret string) Gateway {
	if accessToken == "" {
		logger.L().Warn("Mercado Pago access token is empty")
	}

	return &mercadoPagoGateway{
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		successURL:    publicBaseURL + "/checkout/success",
		failureURL:    publicBaseURL + "/checkout/failure",
		pendingURL:    publicBaseURL + "/checkout/pending",
		notifyURL:     publicBaseURL + "/webhook/payment",
		webhookSecret: webhookSecret,
	}
}

// ----------------- CreatePreference -----------------

func (g *mercadoPagoGateway) CreatePreference(ctx context.Context, pref PreferenceRequest) (*PreferenceResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("external_reference", pref.ExternalReference),
		zap.String("payer", pref.Payer.Email),
		zap.Int("item_count", len(pref.Items)),
	)

	body := map[string]interface{}{
		"items":              pref.Items,
		"external_reference": pref.ExternalReference,
		"payer": map[string]interface{}{
			"name":  pref.Payer.Name,
			"email": pref.Payer.Email,
			"phone": map[string]interface{}{
				"number": pref.Payer.Phone,
			},
		},
		"back_urls": map[string]interface{}{
			"success": g.successURL,
			"failure": g.failureURL,
			"pending": g.pendingURL,
		},
		"auto_return":      "approved",
		"notification_url": g.notifyURL,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal preference request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", mpBaseURL+"/checkout/preferences", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+g.accessToken)
	req.Header.Add("Content-Type", "application/json")

	log.Info("Creating Mercado Pago preference")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Mercado Pago request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read mercadopago response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Mercado Pago returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("mercadopago error: %s", string(bodyBytes))
	}

	var res PreferenceResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding preference response", zap.Error(err))
		return nil, err
	}

	log.Info("Mercado Pago preference created",
		zap.String("preference_id", res.ID),
		zap.String("init_point", res.InitPoint),
	)

	return &res, nil
}

// ----------------- GetPayment -----------------

func (g *mercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (*PaymentInfo, error) {
	log := logger.FromCtx(ctx).With(zap.String("payment_id", paymentID))

	url := fmt.Sprintf("%s/v1/payments/%s", mpBaseURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		log.Error("Failed building request", zap.Error(err))
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+g.accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Request to Mercado Pago failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read mercadopago response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Mercado Pago returned error",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("mercadopago error: %s", string(bodyBytes))
	}

	var res struct {
		ID                json.Number `json:"id"`
		Status            string      `json:"status"`
		ExternalReference string      `json:"external_reference"`
		TransactionAmount float64     `json:"transaction_amount"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding payment", zap.Error(err))
		return nil, err
	}

	log.Info("Mercado Pago payment fetched",
		zap.String("status", res.Status),
		zap.String("external_reference", res.ExternalReference),
	)

	return &PaymentInfo{
		ID:                res.ID.String(),
		Status:            res.Status,
		ExternalReference: res.ExternalReference,
		TransactionAmount: res.TransactionAmount,
	}, nil
}

// ----------------- Verify Webhook Secret -----------------

func (g *mercadoPagoGateway) VerifyWebhookSecret(r *http.Request) error {
	if g.webhookSecret == "" {
		return nil // skip in dev
	}

	sig := r.Header.Get("x-webhook-secret")
	if sig == "" {
		sig = r.URL.Query().Get("secret")
	}

	if sig != g.webhookSecret {
		return errors.New("invalid webhook secret")
	}
	return nil
}
