// Package indicator transforms a validated price series into the full
// indicator snapshot: moving averages, RSI, MACD, Bollinger Bands,
// support/resistance, volume statistics and a trend classification.
//
// The engine is stateless and synchronous. A fresh series goes in, a fresh
// IndicatorSet comes out; concurrent Compute calls for different tickers
// need no locking. Insufficient history for one indicator degrades that
// single field to optional-none and never aborts the computation; only a
// malformed series fails the call.
package indicator

import (
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/warrenlab/warren/internal/logger"
	"github.com/warrenlab/warren/internal/series"
	"github.com/warrenlab/warren/internal/types"
)

// Engine computes indicator sets from price series.
type Engine struct {
	config Config
	logger *logger.Logger
}

// NewEngine validates the config (after filling defaults) and returns an
// engine. An out-of-range config value fails here, not inside Compute.
func NewEngine(config Config, log *logger.Logger) (*Engine, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		config: config,
		logger: log,
	}, nil
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Compute derives the full indicator set from the series, evaluated at the
// series end. The only failure mode is an invalid series.
func (e *Engine) Compute(priceSeries types.PriceSeries) (types.IndicatorSet, error) {
	if err := priceSeries.Validate(); err != nil {
		return types.IndicatorSet{}, err
	}

	closes := priceSeries.Closes()
	latest := priceSeries.Latest()

	set := types.IndicatorSet{
		LatestPrice:    latest.Close,
		MovingAverages: make(map[int]optional.Option[float64], len(e.config.MovingAverageWindows)),
	}

	for _, window := range e.config.MovingAverageWindows {
		set.MovingAverages[window] = series.SMA(closes, window)
	}

	set.RSI = e.computeRSI(closes)
	if set.RSI.IsSome() {
		set.RSISignal = optional.Some(classifyRSI(set.RSI.Unwrap()))
	}

	set.MACD, set.MACDSignal, set.MACDHistogram = e.computeMACD(closes)

	e.computeBollinger(closes, &set)

	set.SupportLevel, set.ResistanceLevel = e.computeSupportResistance(closes)

	set.VolumeAverage = series.SMA(priceSeries.Volumes(), e.config.VolumeAverageWindow)
	if set.VolumeAverage.IsSome() && set.VolumeAverage.Unwrap() != 0 {
		set.VolumeRatio = optional.Some(float64(latest.Volume) / set.VolumeAverage.Unwrap())
	}

	set.TrendDirection, set.TrendStrength = classifyTrend(latest.Close, set)

	e.logger.Debug("computed indicator set",
		zap.Int("bars", len(priceSeries)),
		zap.Float64("latest_price", latest.Close),
	)

	return set, nil
}

// computeRSI implements the simple-rolling-mean RSI: the mean of positive
// deltas over the period divided by the mean of absolute negative deltas.
// Needs period+1 points for period deltas. A flat window produces 0/0,
// which is reported as unavailable rather than 50 or a division error.
func (e *Engine) computeRSI(closes []float64) optional.Option[float64] {
	period := e.config.RSIPeriod
	if len(closes) < period+1 {
		return optional.None[float64]()
	}

	gains := 0.0
	losses := 0.0

	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	switch {
	case avgLoss == 0 && avgGain == 0:
		return optional.None[float64]()
	case avgLoss == 0:
		return optional.Some(100.0)
	default:
		rs := avgGain / avgLoss

		return optional.Some(100.0 - 100.0/(1.0+rs))
	}
}

// classifyRSI maps an RSI value to its zone. Boundary values 30 and 70 are
// neutral: classification is strict inequality only.
func classifyRSI(value float64) types.RSISignal {
	switch {
	case value < 30:
		return types.RSISignalOversold
	case value > 70:
		return types.RSISignalOverbought
	default:
		return types.RSISignalNeutral
	}
}

// macdSeries returns the full MACD line and signal line aligned to closes.
func macdSeries(closes []float64) (macdLine, signalLine []float64) {
	fast := series.EMA(closes, macdFastSpan)
	slow := series.EMA(closes, macdSlowSpan)

	macdLine = make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fast[i] - slow[i]
	}

	signalLine = series.EMA(macdLine, macdSignalSpan)

	return macdLine, signalLine
}

func (e *Engine) computeMACD(closes []float64) (macd, signal, histogram optional.Option[float64]) {
	if len(closes) < macdSlowSpan {
		return optional.None[float64](), optional.None[float64](), optional.None[float64]()
	}

	macdLine, signalLine := macdSeries(closes)
	last := len(closes) - 1

	return optional.Some(macdLine[last]),
		optional.Some(signalLine[last]),
		optional.Some(macdLine[last] - signalLine[last])
}

func (e *Engine) computeBollinger(closes []float64, set *types.IndicatorSet) {
	middle := series.SMA(closes, e.config.BollingerPeriod)
	std := series.RollingStd(closes, e.config.BollingerPeriod)

	if middle.IsNone() || std.IsNone() {
		return
	}

	band := e.config.BollingerStdMultiplier * std.Unwrap()
	upper := middle.Unwrap() + band
	lower := middle.Unwrap() - band

	set.BollingerUpper = optional.Some(upper)
	set.BollingerMiddle = middle
	set.BollingerLower = optional.Some(lower)

	if middle.Unwrap() != 0 {
		set.BollingerWidth = optional.Some((upper - lower) / middle.Unwrap())
	}
}

// computeSupportResistance takes the min and max of the trailing lookback
// closes, or the whole series when it is shorter. Always computable for a
// non-empty series.
func (e *Engine) computeSupportResistance(closes []float64) (support, resistance optional.Option[float64]) {
	window := closes
	if len(closes) > e.config.SupportResistanceLookback {
		window = closes[len(closes)-e.config.SupportResistanceLookback:]
	}

	low := window[0]
	high := window[0]

	for _, v := range window[1:] {
		if v < low {
			low = v
		}

		if v > high {
			high = v
		}
	}

	return optional.Some(low), optional.Some(high)
}

// classifyTrend requires the 20/50/200 moving averages; otherwise the trend
// is unset. Chains use strict inequality only, so equal values fall through
// to sideways. Strong cases are checked before plain ones so a qualifying
// strong alignment is never masked.
func classifyTrend(latestPrice float64, set types.IndicatorSet) (optional.Option[types.TrendDirection], optional.Option[int]) {
	ma20 := set.MA(20)
	ma50 := set.MA(50)
	ma200 := set.MA(200)

	if ma20.IsNone() || ma50.IsNone() || ma200.IsNone() {
		return optional.None[types.TrendDirection](), optional.None[int]()
	}

	m20 := ma20.Unwrap()
	m50 := ma50.Unwrap()
	m200 := ma200.Unwrap()

	alignedUp := m20 > m50 && m50 > m200
	alignedDown := m20 < m50 && m50 < m200

	var (
		direction types.TrendDirection
		strength  int
	)

	switch {
	case alignedUp && latestPrice > m20:
		direction, strength = types.TrendStrongBullish, 90
	case alignedUp:
		direction, strength = types.TrendBullish, 70
	case alignedDown && latestPrice < m20:
		direction, strength = types.TrendStrongBearish, 90
	case alignedDown:
		direction, strength = types.TrendBearish, 70
	default:
		direction, strength = types.TrendSideways, 50
	}

	return optional.Some(direction), optional.Some(strength)
}
