package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Balance policy: epsilon as a decimal string and the currency
	// minor-unit precision used when rounding totals before comparison.
	BalanceEpsilon     string
	CurrencyMinorUnits int32

	// Batch ingestion
	BatchMaxWorkers  int
	BatchMaxFileSize int64 // bytes

	// Workflow policy
	AllowDirectPosting bool

	// Rate limiting for batch uploads, e.g. "10-M" for 10 per minute.
	UploadRateLimit string

	// CORS
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BALANCE_EPSILON", "0.001")
	viper.SetDefault("CURRENCY_MINOR_UNITS", 2)
	viper.SetDefault("BATCH_MAX_WORKERS", 4)
	viper.SetDefault("BATCH_MAX_FILE_SIZE", 10<<20)
	viper.SetDefault("ALLOW_DIRECT_POSTING", false)
	viper.SetDefault("UPLOAD_RATE_LIMIT", "30-M")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.BalanceEpsilon = viper.GetString("BALANCE_EPSILON")
	cfg.CurrencyMinorUnits = viper.GetInt32("CURRENCY_MINOR_UNITS")
	cfg.BatchMaxWorkers = viper.GetInt("BATCH_MAX_WORKERS")
	cfg.BatchMaxFileSize = viper.GetInt64("BATCH_MAX_FILE_SIZE")
	cfg.AllowDirectPosting = viper.GetBool("ALLOW_DIRECT_POSTING")
	cfg.UploadRateLimit = viper.GetString("UPLOAD_RATE_LIMIT")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	if cfg.CurrencyMinorUnits < 0 {
		log.Printf("Warning: CURRENCY_MINOR_UNITS is negative (%d). Defaulting to 2.\n", cfg.CurrencyMinorUnits)
		cfg.CurrencyMinorUnits = 2
	}
	if cfg.BatchMaxWorkers <= 0 {
		log.Printf("Warning: BATCH_MAX_WORKERS must be positive. Defaulting to 4.\n")
		cfg.BatchMaxWorkers = 4
	}

	return cfg, nil
}
