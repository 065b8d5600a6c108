package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service. It is loaded once
// at startup and passed into component constructors; nothing reads the
// environment after LoadConfig returns.
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	// Document store
	MongoURI      string
	MongoDatabase string

	// Optional read-through cache
	RedisURL string

	// Session tokens
	JWTSecret string
	TokenTTL  time.Duration

	// OTP lifecycle
	OTPTTL time.Duration

	// Transactional mail
	SMTP SMTPConfig

	// Optional event broker; empty means in-process pub/sub
	KafkaBrokers []string
}

// SMTPConfig holds credentials for the mail delivery channel.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// LoadConfig reads configuration from the environment, loading a local .env
// file first if one exists.
func LoadConfig() (*Config, error) {
	// Missing .env is fine in production; variables come from the process env.
	_ = godotenv.Load()

	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "5000"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "hostel_portal"),
		RedisURL:      getEnv("REDIS_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTL:      getDurationEnv("TOKEN_TTL", 24*time.Hour),
		OTPTTL:        getDurationEnv("OTP_TTL", 5*time.Minute),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
		},
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Bare numbers are treated as seconds
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
