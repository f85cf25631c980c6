package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/warrenlab/warren/internal/logger"
	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/pkg/errors"
)

// DuckDBProvider serves daily bars from per-ticker Parquet files under a
// local data directory, as written by the downloader. Fundamentals and
// dividends are not stored locally and come back unset.
type DuckDBProvider struct {
	db       *sql.DB
	logger   *logger.Logger
	sq       squirrel.StatementBuilderType
	dataPath string
	now      func() time.Time
}

// NewDuckDBProvider creates a provider reading Parquet files under dataPath.
func NewDuckDBProvider(dataPath string, log *logger.Logger) (*DuckDBProvider, error) {
	if dataPath == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "data path is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProviderUnavailable, "failed to open duckdb connection", err)
	}

	return &DuckDBProvider{
		db:       db,
		logger:   log,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		dataPath: dataPath,
		now:      time.Now,
	}, nil
}

// BarPath returns the Parquet file path for a ticker under the data directory.
func (d *DuckDBProvider) BarPath(ticker string) string {
	return filepath.Join(d.dataPath, ticker+".parquet")
}

// GetHistoricalData implements Provider.
func (d *DuckDBProvider) GetHistoricalData(ctx context.Context, ticker string, period Period) (types.PriceSeries, error) {
	if err := validateTicker(ticker); err != nil {
		return nil, err
	}

	path := d.BarPath(ticker)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no local data for %s: run fetch first (looked for %s)", ticker, path)
	}

	start := period.Start(d.now())

	query, args, err := d.sq.
		Select("date", "open", "high", "low", "close", "volume").
		From(fmt.Sprintf("read_parquet('%s')", path)).
		Where(squirrel.GtOrEq{"date": start}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build bar query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query bars for %s", ticker)
	}
	defer rows.Close()

	var series types.PriceSeries

	for rows.Next() {
		var point types.PricePoint
		if err := rows.Scan(&point.Date, &point.Open, &point.High, &point.Low, &point.Close, &point.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar row", err)
		}

		series = append(series, point)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate bar rows", err)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars for %s over %s", ticker, period)
	}

	if err := series.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "local data for %s is invalid", ticker)
	}

	d.logger.Debug("loaded daily bars from parquet",
		zap.String("ticker", ticker),
		zap.String("path", path),
		zap.Int("bars", len(series)),
	)

	return series, nil
}

// GetStockInfo implements Provider. Local Parquet files hold bars only.
func (d *DuckDBProvider) GetStockInfo(ctx context.Context, ticker string) (types.FundamentalData, error) {
	if err := validateTicker(ticker); err != nil {
		return types.FundamentalData{}, err
	}

	return types.FundamentalData{}, nil
}

// GetDividendInfo implements Provider. Local Parquet files hold bars only.
func (d *DuckDBProvider) GetDividendInfo(ctx context.Context, ticker string) (types.DividendData, error) {
	if err := validateTicker(ticker); err != nil {
		return types.DividendData{}, err
	}

	return types.DividendData{}, nil
}

// Close releases the underlying database connection.
func (d *DuckDBProvider) Close() error {
	if d.db == nil {
		return nil
	}

	err := d.db.Close()
	d.db = nil

	return err
}
