package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	JWTSecret          string
	JWTAccessTokenTTL  time.Duration
	JWTRefreshTokenTTL time.Duration
	BcryptCost         int
	ResetTokenTTL      time.Duration
	AuthRatePerMinute  int

	StoragePath string
	Location    *time.Location

	VNPayTmnCode    string
	VNPayHashSecret string
	VNPayPayURL     string
	VNPayReturnURL  string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Allowed CORS origins in production (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == prodString

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parsed as time.Duration (e.g. "15m", "1h").
	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// JWT refresh token TTL (default: 30 days)
	refreshTTL, err := time.ParseDuration(getEnv("JWT_REFRESH_TOKEN_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TOKEN_TTL: %w", err)
	}
	cfg.JWTRefreshTokenTTL = refreshTTL

	// Password-reset token lifetime (default: 30m)
	resetTTL, err := time.ParseDuration(getEnv("RESET_TOKEN_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_TOKEN_TTL: %w", err)
	}
	cfg.ResetTokenTTL = resetTTL

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Per-IP request budget on the auth endpoints (default: 10/min)
	cfg.AuthRatePerMinute, err = getEnvAsInt("AUTH_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_PER_MINUTE: %w", err)
	}

	// Local file storage root for uploads (default: ./data)
	cfg.StoragePath = getEnv("STORAGE_PATH", "./data")

	// Facility time zone. The "no bookings in the past" cutoff follows the
	// facility's calendar day, not the server's.
	cfg.Location, err = time.LoadLocation(getEnv("TIME_ZONE", "Asia/Ho_Chi_Minh"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
	}

	// VNPay gateway credentials. Required in production; in dev the sandbox
	// defaults are enough to exercise the payment flow.
	cfg.VNPayTmnCode = getEnv("VNPAY_TMN_CODE", "")
	cfg.VNPayHashSecret = getEnv("VNPAY_HASH_SECRET", "")
	cfg.VNPayPayURL = getEnv("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	cfg.VNPayReturnURL = getEnv("VNPAY_RETURN_URL", "")
	if cfg.IsProduction && (cfg.VNPayTmnCode == "" || cfg.VNPayHashSecret == "") {
		return nil, fmt.Errorf("VNPAY_TMN_CODE and VNPAY_HASH_SECRET are required in production")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
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
