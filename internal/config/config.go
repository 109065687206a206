package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	Backup  BackupConfig
	Loan    LoanConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type StorageConfig struct {
	// DataFile is the JSON snapshot path used by the default file backend.
	DataFile string
	// DatabaseURL selects the PostgreSQL backend when non-empty.
	DatabaseURL string
}

type RedisConfig struct {
	// Addr enables the summary cache when non-empty.
	Addr     string
	Password string
	DB       int
}

type BackupConfig struct {
	Dir string
	// Schedule is a cron spec with a seconds field.
	Schedule string
}

// LoanConfig carries the first-run defaults for the tracked loan. Once a
// snapshot exists, the persisted LoanConfig wins.
type LoanConfig struct {
	Nickname           string
	InitialBalance     string
	AnnualRatePercent  string
	InitialFundBalance string
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATA_FILE", "mortgage-ledger.json")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("BACKUP_SCHEDULE", "0 0 3 * * *")
	viper.SetDefault("LOAN_NICKNAME", "Family Home")
	viper.SetDefault("LOAN_INITIAL_BALANCE", "250000")
	viper.SetDefault("LOAN_ANNUAL_RATE_PERCENT", "3.5")
	viper.SetDefault("LOAN_INITIAL_FUND_BALANCE", "0")

	viper.AutomaticEnv()

	// Optional .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Host: viper.GetString("SERVER_HOST"),
			Env:  viper.GetString("ENV"),
		},
		Storage: StorageConfig{
			DataFile:    viper.GetString("DATA_FILE"),
			DatabaseURL: viper.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Backup: BackupConfig{
			Dir:      viper.GetString("BACKUP_DIR"),
			Schedule: viper.GetString("BACKUP_SCHEDULE"),
		},
		Loan: LoanConfig{
			Nickname:           viper.GetString("LOAN_NICKNAME"),
			InitialBalance:     viper.GetString("LOAN_INITIAL_BALANCE"),
			AnnualRatePercent:  viper.GetString("LOAN_ANNUAL_RATE_PERCENT"),
			InitialFundBalance: viper.GetString("LOAN_INITIAL_FUND_BALANCE"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Storage.DataFile == "" && c.Storage.DatabaseURL == "" {
		return fmt.Errorf("either DATA_FILE or DATABASE_URL is required")
	}

	if _, err := decimal.NewFromString(c.Loan.InitialBalance); err != nil {
		return fmt.Errorf("LOAN_INITIAL_BALANCE must be a valid decimal: %w", err)
	}

	if _, err := decimal.NewFromString(c.Loan.AnnualRatePercent); err != nil {
		return fmt.Errorf("LOAN_ANNUAL_RATE_PERCENT must be a valid decimal: %w", err)
	}

	if _, err := decimal.NewFromString(c.Loan.InitialFundBalance); err != nil {
		return fmt.Errorf("LOAN_INITIAL_FUND_BALANCE must be a valid decimal: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DefaultLoanConfig returns the configured first-run loan defaults.
func (c *Config) DefaultLoanConfig() domain.LoanConfig {
	initial, _ := decimal.NewFromString(c.Loan.InitialBalance)
	rate, _ := decimal.NewFromString(c.Loan.AnnualRatePercent)
	fund, _ := decimal.NewFromString(c.Loan.InitialFundBalance)
	return domain.LoanConfig{
		Nickname:           c.Loan.Nickname,
		InitialBalance:     initial,
		AnnualRatePercent:  rate,
		InitialFundBalance: fund,
	}
}
