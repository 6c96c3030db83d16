package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	LogLevel   string

	DatabaseURL string

	JWTSecret []byte

	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string

	KafkaBrokers []string

	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment, with .env as a convenience
// fallback for local development.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	return &Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		StripeSecretKey:      EnvDefault("STRIPE_SECRET_KEY", "sk_test_placeholder"),
		StripePublishableKey: EnvDefault("STRIPE_PUBLISHABLE_KEY", "pk_test_placeholder"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		AdminEmail:    EnvDefault("ADMIN_EMAIL", "admin@prodesign.com"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "admin123"),
	}
}

// MustLoad is Load plus startup enforcement of the values the service cannot
// run without.
func MustLoad() *Config {
	cfg := Load()
	MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	return cfg
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
