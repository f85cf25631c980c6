// Package analyzer orchestrates a full stock analysis: price history, the
// indicator set, trading signals, fundamental and dividend assessments, and
// the combined score.
package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warrenlab/warren/internal/analysis"
	"github.com/warrenlab/warren/internal/cache"
	"github.com/warrenlab/warren/internal/indicator"
	"github.com/warrenlab/warren/internal/logger"
	"github.com/warrenlab/warren/internal/signal"
	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/pkg/errors"
	"github.com/warrenlab/warren/pkg/marketdata"
)

// minSeriesPoints is the fewest daily bars worth analyzing at all.
const minSeriesPoints = 2

// Analyzer runs the full pipeline for a ticker and caches the resulting
// report per trading day.
type Analyzer struct {
	provider    marketdata.Provider
	engine      *indicator.Engine
	signals     *signal.Generator
	fundamental *analysis.Fundamental
	dividend    *analysis.Dividend
	scorer      *analysis.Scorer
	cache       cache.Cache
	logger      *logger.Logger
	now         func() time.Time
}

// Config holds the analyzer's tunable parts. Zero values fall back to
// defaults.
type Config struct {
	Indicators indicator.Config
	Weights    analysis.Weights
}

// NewAnalyzer wires the pipeline. The cache may be nil, in which case every
// call recomputes the report.
func NewAnalyzer(provider marketdata.Provider, config Config, reportCache cache.Cache, log *logger.Logger) (*Analyzer, error) {
	if provider == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "provider is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	engine, err := indicator.NewEngine(config.Indicators, log)
	if err != nil {
		return nil, err
	}

	weights := config.Weights
	if weights == (analysis.Weights{}) {
		weights = analysis.DefaultWeights()
	}

	scorer, err := analysis.NewScorer(weights)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		provider:    provider,
		engine:      engine,
		signals:     signal.NewGenerator(),
		fundamental: analysis.NewFundamental(),
		dividend:    analysis.NewDividend(),
		scorer:      scorer,
		cache:       reportCache,
		logger:      log,
		now:         time.Now,
	}, nil
}

// AnalyzeStock produces a full report for the ticker over the trailing
// period. Reports are cached per (ticker, trading day): a second call on the
// same day returns the cached report without touching the provider.
func (a *Analyzer) AnalyzeStock(ctx context.Context, ticker string, period marketdata.Period) (types.Report, error) {
	if ticker == "" {
		return types.Report{}, errors.New(errors.ErrCodeInvalidTicker, "ticker is required")
	}

	today := a.now()

	if a.cache != nil {
		if report, ok := a.cache.Get(ticker, today); ok {
			a.logger.Debug("serving cached report", zap.String("ticker", ticker))

			return report, nil
		}
	}

	series, err := a.provider.GetHistoricalData(ctx, ticker, period)
	if err != nil {
		return types.Report{}, err
	}

	// A single bar has no deltas to analyze.
	if len(series) < minSeriesPoints {
		return types.Report{}, errors.NewInsufficientDataError(minSeriesPoints, len(series), ticker, "not enough history to analyze")
	}

	set, err := a.engine.Compute(series)
	if err != nil {
		return types.Report{}, err
	}

	signals := a.signals.Generate(set)

	fundamentalData, err := a.provider.GetStockInfo(ctx, ticker)
	if err != nil {
		// Fundamentals are best effort: score what we have.
		a.logger.Warn("failed to fetch fundamentals", zap.String("ticker", ticker), zap.Error(err))

		fundamentalData = types.FundamentalData{}
	}

	dividendData, err := a.provider.GetDividendInfo(ctx, ticker)
	if err != nil {
		a.logger.Warn("failed to fetch dividend info", zap.String("ticker", ticker), zap.Error(err))

		dividendData = types.DividendData{}
	}

	fundamental := a.fundamental.Analyze(fundamentalData)
	dividend := a.dividend.Analyze(dividendData)
	score := a.scorer.Combine(signals, fundamental, dividend)

	report := types.Report{
		ID:          uuid.New().String(),
		Ticker:      ticker,
		GeneratedAt: today,
		AsOfDate:    series[len(series)-1].Date,
		Technical:   set,
		Signals:     signals,
		Fundamental: fundamental,
		Dividend:    dividend,
		Score:       score,
	}

	if a.cache != nil {
		a.cache.Set(ticker, today, report)
	}

	a.logger.Info("analysis complete",
		zap.String("ticker", ticker),
		zap.Float64("total_score", score.TotalScore),
		zap.String("recommendation", string(score.Recommendation)),
	)

	return report, nil
}
