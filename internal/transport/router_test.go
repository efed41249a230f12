package transport

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pastafresca-be/internal/payment"
	"pastafresca-be/internal/payment/webhook"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePreference(ctx context.Context, req payment.PreferenceRequest) (*payment.PreferenceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PreferenceResponse), args.Error(1)
}

func (m *MockGateway) GetPayment(ctx context.Context, paymentID string) (*payment.PaymentInfo, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentInfo), args.Error(1)
}

func (m *MockGateway) VerifyWebhookSecret(r *http.Request) error {
	args := m.Called(r)
	return args.Error(0)
}

func newTestRouter(t *testing.T) (http.Handler, handlerMocks) {
	t.Helper()
	h, m := newTestHandler()
	gw := new(MockGateway)
	gw.On("VerifyWebhookSecret", mock.Anything).Return(nil)
	wh := webhook.NewHandler(m.purchases, gw)
	return NewRouter(h, wh, "router-test-secret"), m
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminRoutesAcceptValidToken(t *testing.T) {
	router, m := newTestRouter(t)

	m.purchases.On("List", mock.Anything, int32(0), int32(0)).Return(nil, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "admin@pastafresca.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("router-test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_LoginIsPublic(t *testing.T) {
	router, m := newTestRouter(t)

	m.users.On("Login", mock.Anything, mock.Anything, mock.Anything).Return("tok", nil)

	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// An empty body fails JSON parsing, not authorization.
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_WebhookIsWired(t *testing.T) {
	router, m := newTestRouter(t)

	m.purchases.On("Reconcile", mock.Anything, "77").Return(nil)

	req := httptest.NewRequest("POST", "/webhook/payment",
		bytes.NewBufferString(`{"type":"payment","data":{"id":77}}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.purchases.AssertExpectations(t)
}
