package marketdata

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"go.uber.org/zap"

	"github.com/warrenlab/warren/internal/logger"
	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/pkg/errors"
)

const polygonPageLimit = 50000

// PolygonProvider serves daily bars, ticker details and dividend history
// from the Polygon REST API.
type PolygonProvider struct {
	client *polygon.Client
	logger *logger.Logger
	now    func() time.Time
}

// NewPolygonProvider creates a provider backed by the Polygon REST API.
func NewPolygonProvider(apiKey string, log *logger.Logger) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon api key is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PolygonProvider{
		client: polygon.New(apiKey),
		logger: log,
		now:    time.Now,
	}, nil
}

// GetHistoricalData implements Provider.
func (p *PolygonProvider) GetHistoricalData(ctx context.Context, ticker string, period Period) (types.PriceSeries, error) {
	if err := validateTicker(ticker); err != nil {
		return nil, err
	}

	end := p.now()
	start := period.Start(end)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithAdjusted(true).WithLimit(polygonPageLimit)

	iter := p.client.ListAggs(ctx, params)

	var series types.PriceSeries

	for iter.Next() {
		agg := iter.Item()
		series = append(series, types.PricePoint{
			Date:     time.Time(agg.Timestamp),
			Open:     agg.Open,
			High:     agg.High,
			Low:      agg.Low,
			Close:    agg.Close,
			Volume:   int64(agg.Volume),
			AdjClose: optional.None[float64](),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to list aggregates for %s", ticker)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no daily bars returned for %s over %s", ticker, period)
	}

	if err := series.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "polygon returned an invalid series for %s", ticker)
	}

	p.logger.Debug("fetched daily bars",
		zap.String("ticker", ticker),
		zap.String("period", string(period)),
		zap.Int("bars", len(series)),
	)

	return series, nil
}

// GetStockInfo implements Provider. Polygon ticker details carry market cap
// only, so valuation ratios are left unset.
func (p *PolygonProvider) GetStockInfo(ctx context.Context, ticker string) (types.FundamentalData, error) {
	if err := validateTicker(ticker); err != nil {
		return types.FundamentalData{}, err
	}

	info := types.FundamentalData{}

	details, err := p.client.GetTickerDetails(ctx, &models.GetTickerDetailsParams{Ticker: ticker})
	if err != nil {
		return types.FundamentalData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to get ticker details for %s", ticker)
	}

	if details.Results.MarketCap > 0 {
		info.MarketCap = optional.Some(details.Results.MarketCap)
	}

	if price, err := p.previousClose(ctx, ticker); err != nil {
		p.logger.Warn("failed to fetch previous close", zap.String("ticker", ticker), zap.Error(err))
	} else {
		info.CurrentPrice = optional.Some(price)
	}

	return info, nil
}

// GetDividendInfo implements Provider. The annual rate is derived from the
// most recent cash dividend and its payment frequency; the yield uses the
// previous close. Payout ratio and the five-year average yield are not
// available from Polygon.
func (p *PolygonProvider) GetDividendInfo(ctx context.Context, ticker string) (types.DividendData, error) {
	if err := validateTicker(ticker); err != nil {
		return types.DividendData{}, err
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListDividendsParams{}.
		WithTicker(models.EQ, ticker).
		WithLimit(1)

	iter := p.client.ListDividends(ctx, params)

	data := types.DividendData{}

	if iter.Next() {
		dividend := iter.Item()
		if dividend.CashAmount > 0 && dividend.Frequency > 0 {
			rate := dividend.CashAmount * float64(dividend.Frequency)
			data.Rate = optional.Some(rate)

			if price, err := p.previousClose(ctx, ticker); err == nil && price > 0 {
				data.Yield = optional.Some(rate / price)
			}
		}
	}

	if err := iter.Err(); err != nil {
		return types.DividendData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to list dividends for %s", ticker)
	}

	return data, nil
}

func (p *PolygonProvider) previousClose(ctx context.Context, ticker string) (float64, error) {
	resp, err := p.client.GetPreviousCloseAgg(ctx, &models.GetPreviousCloseAggParams{Ticker: ticker})
	if err != nil {
		return 0, err
	}

	if len(resp.Results) == 0 {
		return 0, errors.Newf(errors.ErrCodeNoDataFound, "no previous close for %s", ticker)
	}

	return resp.Results[0].Close, nil
}
