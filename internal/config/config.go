// Package config reads the application configuration from environment
// variables. cmd/main.go loads a .env file first, so local development
// works without exporting anything by hand.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 72 * time.Hour

// Config holds everything the server needs to start.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	TelegramBotToken    string
	TelegramAdminChatID int64
}

// Load reads the configuration from the environment. DB_HOST left empty
// selects the in-memory store, which is only meant for local development.
func Load() Config {
	cfg := Config{
		Port:             getenv("PORT", "8080"),
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           getenv("DB_USER", "user"),
		DBPassword:       getenv("DB_PASSWORD", "password"),
		DBName:           getenv("DB_NAME", "complaintdb"),
		DBPort:           getenv("DB_PORT", "5432"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getenv("JWT_SECRET", "dev-only-secret"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}
	if raw := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.TelegramAdminChatID = id
		}
	}
	return cfg
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
