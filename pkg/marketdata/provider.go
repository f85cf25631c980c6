// Package marketdata provides access to daily equity bars, fundamentals and
// dividend history from remote and local providers.
package marketdata

import (
	"context"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/warrenlab/warren/internal/logger"
	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/pkg/errors"
)

// tickerPattern bounds ticker symbols to the characters vendors actually
// use. Tickers reach file paths and SQL text, so anything else is rejected
// up front.
var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9.\-]+$`)

func validateTicker(ticker string) error {
	if ticker == "" {
		return errors.New(errors.ErrCodeInvalidTicker, "ticker is required")
	}

	if !tickerPattern.MatchString(ticker) {
		return errors.Newf(errors.ErrCodeInvalidTicker, "invalid ticker %q", ticker)
	}

	return nil
}

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderDuckDB  ProviderType = "duckdb"
)

// Provider is the source of record for everything the analyzer consumes.
type Provider interface {
	// GetHistoricalData returns daily bars for the trailing period,
	// sorted ascending by date.
	GetHistoricalData(ctx context.Context, ticker string, period Period) (types.PriceSeries, error)
	// GetStockInfo returns valuation and profitability metrics for the
	// ticker. Fields the provider cannot supply are left unset.
	GetStockInfo(ctx context.Context, ticker string) (types.FundamentalData, error)
	// GetDividendInfo returns dividend metrics for the ticker. Fields the
	// provider cannot supply are left unset.
	GetDividendInfo(ctx context.Context, ticker string) (types.DividendData, error)
}

// Config holds the configuration for constructing a provider.
type Config struct {
	Type ProviderType `json:"type" yaml:"type" validate:"required,oneof=polygon duckdb"`
	// DataPath is the directory holding per-ticker Parquet files. Required
	// for the duckdb provider.
	DataPath string `json:"data_path" yaml:"data_path" validate:"required_if=Type duckdb"`
	// APIKey authenticates against the Polygon REST API. Required for the
	// polygon provider.
	APIKey string `json:"api_key" yaml:"api_key" validate:"required_if=Type polygon"`
}

// NewProvider creates a provider from the given configuration.
func NewProvider(config Config, log *logger.Logger) (Provider, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid provider configuration", err)
	}

	switch config.Type {
	case ProviderPolygon:
		return NewPolygonProvider(config.APIKey, log)
	case ProviderDuckDB:
		return NewDuckDBProvider(config.DataPath, log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported provider type: %s", config.Type)
	}
}
