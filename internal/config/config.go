package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv     string
	ServerPort int
	LogLevel   string

	DatabaseURL string

	JWTSecret         []byte
	SessionTTL        time.Duration
	AdminUsername     string
	AdminPasswordHash string

	MaxLoginAttempts int
	LoginWindow      time.Duration

	ImageDir      string
	AdminPagesDir string
	DeliveryFee   int

	KafkaBrokers []string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string
}

func Load() Config {
	return Config{
		AppEnv:     EnvDefault("APP_ENV", "development"),
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		SessionTTL:        24 * time.Hour,
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		MaxLoginAttempts: EnvIntDefault("MAX_LOGIN_ATTEMPTS", 5),
		LoginWindow:      time.Duration(EnvIntDefault("LOGIN_TIMEOUT_MINUTES", 15)) * time.Minute,

		ImageDir:      EnvDefault("IMAGE_DIR", "public/images"),
		AdminPagesDir: EnvDefault("ADMIN_PAGES_DIR", "public/admin"),
		DeliveryFee:   EnvIntDefault("DELIVERY_FEE", 50),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),
	}
}

// Validate fails closed: a missing or weak session secret is a startup
// error, never silently replaced with a default.
func (c Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes, got %d", len(c.JWTSecret))
	}
	if c.AdminUsername == "" {
		return fmt.Errorf("missing required env ADMIN_USERNAME")
	}
	if c.AdminPasswordHash == "" {
		return fmt.Errorf("missing required env ADMIN_PASSWORD_HASH")
	}
	if c.MaxLoginAttempts <= 0 {
		return fmt.Errorf("MAX_LOGIN_ATTEMPTS must be positive")
	}
	if c.LoginWindow <= 0 {
		return fmt.Errorf("LOGIN_TIMEOUT_MINUTES must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
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
