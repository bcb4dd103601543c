package cmd

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config carries every tunable the application reads at startup. Database
// and HTTP settings come from the environment; the rest have defaults
// suitable for a single-store deployment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// TaxRate is the fraction applied to invoice subtotals, e.g. 0.18.
	TaxRate decimal.Decimal

	// ProviderTimeout bounds every messaging provider HTTP call.
	ProviderTimeout time.Duration

	// RetryBaseDelay is the exponential backoff unit for notification
	// re-delivery.
	RetryBaseDelay time.Duration
}
