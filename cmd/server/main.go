package main

import (
	"net/http"

	"pastafresca-be/internal/config"
	"pastafresca-be/internal/coupon"
	"pastafresca-be/internal/db"
	"pastafresca-be/internal/logger"
	"pastafresca-be/internal/payment"
	"pastafresca-be/internal/payment/webhook"
	"pastafresca-be/internal/product"
	"pastafresca-be/internal/purchase"
	"pastafresca-be/internal/transport"
	"pastafresca-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	couponRepo := coupon.NewRepository(database)
	couponSvc := coupon.NewService(couponRepo)

	gateway := payment.NewMercadoPagoGateway(cfg.MPAccessToken, cfg.PublicBaseURL, cfg.WebhookSecret)

	purchaseRepo := purchase.NewRepository(database)
	purchaseSvc := purchase.NewService(purchaseRepo, productRepo, couponSvc, gateway)

	userSvc := user.NewService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret)

	handler := transport.NewHandler(productSvc, couponSvc, purchaseSvc, userSvc)
	webhookHandler := webhook.NewHandler(purchaseSvc, gateway)
	router := transport.NewRouter(handler, webhookHandler, cfg.JWTSecret)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
