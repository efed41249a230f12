package user

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail = "admin@pastafresca.com"
	adminPass  = "super-secreto"
	jwtSecret  = "jwt-test-secret"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(adminEmail, string(hash), jwtSecret)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login(context.Background(), adminEmail, adminPass)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, adminEmail, claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), exp.Time, time.Minute)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login(context.Background(), "  Admin@PastaFresca.com ", adminPass)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), adminEmail, "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "otro@example.com", adminPass)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
