package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pastafresca-be/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// service authenticates the single admin account configured via environment.
// There is no user table; the shop has exactly one back-office operator.
type service struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         []byte
	now               func() time.Time
}

func NewService(adminEmail, adminPasswordHash, jwtSecret string) Service {
	return &service{
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         []byte(jwtSecret),
		now:               time.Now,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromCtx(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	if email != s.adminEmail {
		log.Warn("login attempt for unknown account", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		log.Warn("login attempt with wrong password", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	log.Info("admin logged in", zap.String("email", email))
	return signed, nil
}
