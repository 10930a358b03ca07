package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

const (
	prodString      = "prod"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string

	StoreBackend string // memory | postgres
	DBDSN        string // required for postgres

	// Operating window and slot width of the shop.
	OpenTime     schedule.Clock
	CloseTime    schedule.Clock
	SlotInterval time.Duration

	// Scheduling policies.
	SuggestLimit        int
	CancelNotice        time.Duration
	StrictParsing       bool
	AllowMultipleActive bool

	// Admin surface.
	AdminPasswordHash string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration

	// Notifications and reporting.
	AdminWebhookURL string // empty = log only
	SummaryTime     schedule.Clock
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == prodString
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.StoreBackend = getEnv("STORE_BACKEND", BackendMemory)
	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		cfg.DBDSN = os.Getenv("DB_DSN")
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when STORE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q, expected memory or postgres", cfg.StoreBackend)
	}

	var err error
	if cfg.OpenTime, err = getEnvAsClock("OPEN_TIME", "08:00"); err != nil {
		return nil, err
	}
	if cfg.CloseTime, err = getEnvAsClock("CLOSE_TIME", "20:00"); err != nil {
		return nil, err
	}
	intervalMinutes, err := getEnvAsInt("SLOT_INTERVAL_MINUTES", 40)
	if err != nil {
		return nil, err
	}
	cfg.SlotInterval = time.Duration(intervalMinutes) * time.Minute

	if cfg.SuggestLimit, err = getEnvAsInt("SUGGEST_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.CancelNotice, err = getEnvAsDuration("CANCEL_NOTICE", "2h"); err != nil {
		return nil, err
	}
	if cfg.StrictParsing, err = getEnvAsBool("STRICT_PARSING", false); err != nil {
		return nil, err
	}
	if cfg.AllowMultipleActive, err = getEnvAsBool("ALLOW_MULTIPLE_ACTIVE", false); err != nil {
		return nil, err
	}

	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", "15m"); err != nil {
		return nil, err
	}

	cfg.AdminWebhookURL = getEnv("ADMIN_WEBHOOK_URL", "")
	if cfg.SummaryTime, err = getEnvAsClock("SUMMARY_TIME", "07:00"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set, otherwise
// the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsDuration(key, defaultValue string) (time.Duration, error) {
	valStr := getEnv(key, defaultValue)
	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsClock(key, defaultValue string) (schedule.Clock, error) {
	valStr := getEnv(key, defaultValue)
	val, err := schedule.ParseClock(valStr)
	if err != nil {
		return schedule.Clock{}, fmt.Errorf("env %s value %q is not a valid HH:MM time: %w", key, valStr, err)
	}
	return val, nil
}
