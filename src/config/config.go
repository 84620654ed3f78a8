package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// AppConfig holds all configuration for the client.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	APIBaseURL     string
	RequestTimeout time.Duration
	LogLevel       string

	// Display settings
	Locale         string
	CurrencySymbol string

	// Outbound request throttling
	RateLimitInterval time.Duration
	RateLimitBurst    int

	// Read-side cache for admin listings and reports
	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration

	// Preset amounts offered by the deposit/withdraw modals
	QuickAmounts []decimal.Decimal
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}
	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables.")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	Cfg = &AppConfig{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080/api"),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 20*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		Locale:         getEnv("LOCALE", "tr-TR"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₺"),

		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 100*time.Millisecond),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 30),

		CacheTTL:             getEnvAsDuration("CACHE_TTL", 30*time.Second),
		CacheCleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),

		QuickAmounts: getQuickAmounts("QUICK_AMOUNTS"),
	}

	log.Printf("Configuration loaded: APIBaseURL=%s, LogLevel=%s, Locale=%s",
		Cfg.APIBaseURL, Cfg.LogLevel, Cfg.Locale)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getQuickAmounts parses the comma-separated preset amounts for the
// deposit/withdraw modals.
func getQuickAmounts(key string) []decimal.Decimal {
	raw := getEnv(key, "100,250,500,1000")
	parts := strings.Split(raw, ",")
	amounts := make([]decimal.Decimal, 0, len(parts))
	for _, p := range parts {
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			log.Printf("Invalid quick amount %q in %s, skipping", p, key)
			continue
		}
		amounts = append(amounts, d)
	}
	return amounts
}
