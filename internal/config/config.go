package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	AppPort           string
	AppEnv            string
	MPAccessToken     string
	PublicBaseURL     string
	WebhookSecret     string
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		MPAccessToken:     os.Getenv("MP_ACCESS_TOKEN"),
		PublicBaseURL:     os.Getenv("PUBLIC_BASE_URL"),
		WebhookSecret:     os.Getenv("MP_WEBHOOK_SECRET"),
		JWTSecret:         os.Getenv("SECRET_KEY"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
