package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Ledger policies
	RetryAttempts      int
	RetryBackoff       time.Duration
	OpeningBalance     decimal.Decimal
	IdempotencyEnabled bool

	// Address seeded onto lazily created accounts
	SeedCity    string
	SeedState   string
	SeedCountry string

	// Rate limit in ulule/limiter format, e.g. "100-M"
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LEDGER_RETRY_ATTEMPTS", 3)
	viper.SetDefault("LEDGER_RETRY_BACKOFF", "20ms")
	viper.SetDefault("LEDGER_OPENING_BALANCE", "10000")
	viper.SetDefault("LEDGER_IDEMPOTENCY_ENABLED", false)
	viper.SetDefault("SEED_CITY", "Chennai")
	viper.SetDefault("SEED_STATE", "TN")
	viper.SetDefault("SEED_COUNTRY", "India")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	opening, err := decimal.NewFromString(viper.GetString("LEDGER_OPENING_BALANCE"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_OPENING_BALANCE %q: %w", viper.GetString("LEDGER_OPENING_BALANCE"), err)
	}

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		RetryAttempts:      viper.GetInt("LEDGER_RETRY_ATTEMPTS"),
		RetryBackoff:       viper.GetDuration("LEDGER_RETRY_BACKOFF"),
		OpeningBalance:     opening,
		IdempotencyEnabled: viper.GetBool("LEDGER_IDEMPOTENCY_ENABLED"),
		SeedCity:           viper.GetString("SEED_CITY"),
		SeedState:          viper.GetString("SEED_STATE"),
		SeedCountry:        viper.GetString("SEED_COUNTRY"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
	}

	if cfg.RetryAttempts < 1 {
		return nil, fmt.Errorf("LEDGER_RETRY_ATTEMPTS must be at least 1, got %d", cfg.RetryAttempts)
	}

	return cfg, nil
}
