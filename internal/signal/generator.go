// Package signal derives discrete trading signals from a computed
// indicator set using rule-based thresholds. Rules are evaluated
// independently, in indicator order (RSI, MACD, trend, support); several
// signals may co-occur and may conflict. Arbitration between conflicting
// signals belongs to the score combiner.
package signal

import (
	"github.com/warrenlab/warren/internal/types"
)

// Supported proximity threshold: a price within this percentage above the
// support level counts as approaching it.
const supportProximityPercent = 2.0

// Generator turns indicator sets into signal lists.
type Generator struct{}

// NewGenerator creates a signal generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate evaluates every rule against the set. A rule whose inputs are
// absent emits nothing; an empty list is a valid outcome, not an error.
func (g *Generator) Generate(set types.IndicatorSet) []types.Signal {
	signals := []types.Signal{}

	signals = appendRSISignal(signals, set)
	signals = appendMACDSignal(signals, set)
	signals = appendTrendSignal(signals, set)
	signals = appendSupportSignal(signals, set)

	return signals
}

func appendRSISignal(signals []types.Signal, set types.IndicatorSet) []types.Signal {
	if set.RSISignal.IsNone() {
		return signals
	}

	switch set.RSISignal.Unwrap() {
	case types.RSISignalOversold:
		return append(signals, types.Signal{
			Type:      types.SignalTypeBuy,
			Indicator: types.IndicatorTypeRSI,
			Strength:  types.SignalStrengthMedium,
			Message:   "RSI indicates oversold conditions, potential reversal",
		})
	case types.RSISignalOverbought:
		return append(signals, types.Signal{
			Type:      types.SignalTypeSell,
			Indicator: types.IndicatorTypeRSI,
			Strength:  types.SignalStrengthMedium,
			Message:   "RSI overbought, risk of correction",
		})
	case types.RSISignalNeutral:
		return signals
	}

	return signals
}

// appendMACDSignal requires both the MACD line and signal line. The two
// comparisons must hold jointly; this is deliberately not an if/else, so a
// crossover with a histogram on the wrong side emits nothing.
func appendMACDSignal(signals []types.Signal, set types.IndicatorSet) []types.Signal {
	if set.MACD.IsNone() || set.MACDSignal.IsNone() || set.MACDHistogram.IsNone() {
		return signals
	}

	macd := set.MACD.Unwrap()
	signalLine := set.MACDSignal.Unwrap()
	histogram := set.MACDHistogram.Unwrap()

	if macd > signalLine && histogram > 0 {
		return append(signals, types.Signal{
			Type:      types.SignalTypeBuy,
			Indicator: types.IndicatorTypeMACD,
			Strength:  types.SignalStrengthWeak,
			Message:   "MACD bullish crossover",
		})
	}

	if macd < signalLine && histogram < 0 {
		return append(signals, types.Signal{
			Type:      types.SignalTypeSell,
			Indicator: types.IndicatorTypeMACD,
			Strength:  types.SignalStrengthWeak,
			Message:   "MACD bearish crossover",
		})
	}

	return signals
}

// appendTrendSignal emits only for the strong alignments; plain bullish,
// bearish and sideways trends produce no trend signal.
func appendTrendSignal(signals []types.Signal, set types.IndicatorSet) []types.Signal {
	if set.TrendDirection.IsNone() {
		return signals
	}

	switch set.TrendDirection.Unwrap() {
	case types.TrendStrongBullish:
		return append(signals, types.Signal{
			Type:      types.SignalTypeBuy,
			Indicator: types.IndicatorTypeTrend,
			Strength:  types.SignalStrengthStrong,
			Message:   "Strong bullish trend, all moving averages aligned",
		})
	case types.TrendStrongBearish:
		return append(signals, types.Signal{
			Type:      types.SignalTypeSell,
			Indicator: types.IndicatorTypeTrend,
			Strength:  types.SignalStrengthStrong,
			Message:   "Strong bearish trend, caution advised",
		})
	case types.TrendBullish, types.TrendBearish, types.TrendSideways:
		return signals
	}

	return signals
}

// appendSupportSignal measures the distance from the latest close to the
// support level. The latest close is the basis for the percentage, not the
// support level itself.
func appendSupportSignal(signals []types.Signal, set types.IndicatorSet) []types.Signal {
	if set.SupportLevel.IsNone() {
		return signals
	}

	support := set.SupportLevel.Unwrap()
	if support <= 0 || set.LatestPrice <= 0 {
		return signals
	}

	distancePercent := (set.LatestPrice - support) / support * 100
	if distancePercent < supportProximityPercent {
		return append(signals, types.Signal{
			Type:      types.SignalTypeBuy,
			Indicator: types.IndicatorTypeSupport,
			Strength:  types.SignalStrengthMedium,
			Message:   "Approaching support level, potential bounce",
		})
	}

	return signals
}
