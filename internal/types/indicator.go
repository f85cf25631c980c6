package types

import "github.com/moznion/go-optional"

// IndicatorType identifies the indicator that produced a value or signal.
type IndicatorType string

const (
	IndicatorTypeMovingAverage  IndicatorType = "moving_average"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeSupport        IndicatorType = "support"
	IndicatorTypeVolume         IndicatorType = "volume"
	IndicatorTypeTrend          IndicatorType = "trend"
)

// RSISignal classifies the current RSI reading. Boundary values 30 and 70
// are NEUTRAL; classification uses strict inequality.
type RSISignal string

const (
	RSISignalOversold   RSISignal = "oversold"
	RSISignalNeutral    RSISignal = "neutral"
	RSISignalOverbought RSISignal = "overbought"
)

// TrendDirection classifies the alignment of the 20/50/200 moving averages.
type TrendDirection string

const (
	TrendStrongBullish TrendDirection = "strong_bullish"
	TrendBullish       TrendDirection = "bullish"
	TrendSideways      TrendDirection = "sideways"
	TrendBearish       TrendDirection = "bearish"
	TrendStrongBearish TrendDirection = "strong_bearish"
)

// AllTrendDirections lists every TrendDirection value. Display mappings are
// verified total against this list.
var AllTrendDirections = []TrendDirection{
	TrendStrongBullish,
	TrendBullish,
	TrendSideways,
	TrendBearish,
	TrendStrongBearish,
}

// TrendDisplay is presentation metadata for a trend direction.
type TrendDisplay struct {
	Label string
	Emoji string
}

var trendDisplays = map[TrendDirection]TrendDisplay{
	TrendStrongBullish: {Label: "STRONG BULLISH", Emoji: "\U0001F7E2\U0001F7E2"},
	TrendBullish:       {Label: "BULLISH", Emoji: "\U0001F7E2"},
	TrendSideways:      {Label: "SIDEWAYS", Emoji: "⚪"},
	TrendBearish:       {Label: "BEARISH", Emoji: "\U0001F534"},
	TrendStrongBearish: {Label: "STRONG BEARISH", Emoji: "\U0001F534\U0001F534"},
}

// Display returns the presentation metadata for the trend direction.
// The mapping is total over AllTrendDirections; an unknown value panics
// rather than degrading to a silent placeholder.
func (t TrendDirection) Display() TrendDisplay {
	display, ok := trendDisplays[t]
	if !ok {
		panic("types: no display metadata for trend direction " + string(t))
	}

	return display
}

// IndicatorSet is the computed indicator snapshot for one (ticker, as-of
// date) pair. Every field is independently optional: insufficient history
// yields None for that field alone, never zero and never an error. Rules
// consuming the set must check for presence before comparing.
type IndicatorSet struct {
	// LatestPrice is the close of the most recent bar the set was computed
	// from. Always present; signal rules use it rather than re-deriving it.
	LatestPrice float64 `json:"latest_price"`

	// MovingAverages maps window length to the SMA of closes at the series
	// end, keyed by the configured windows (20/50/200 by default).
	MovingAverages map[int]optional.Option[float64] `json:"moving_averages"`

	RSI       optional.Option[float64]   `json:"rsi"`
	RSISignal optional.Option[RSISignal] `json:"rsi_signal"`

	MACD          optional.Option[float64] `json:"macd"`
	MACDSignal    optional.Option[float64] `json:"macd_signal_line"`
	MACDHistogram optional.Option[float64] `json:"macd_histogram"`

	BollingerUpper  optional.Option[float64] `json:"bollinger_upper"`
	BollingerMiddle optional.Option[float64] `json:"bollinger_middle"`
	BollingerLower  optional.Option[float64] `json:"bollinger_lower"`
	BollingerWidth  optional.Option[float64] `json:"bollinger_width"`

	SupportLevel    optional.Option[float64] `json:"support_level"`
	ResistanceLevel optional.Option[float64] `json:"resistance_level"`

	VolumeAverage optional.Option[float64] `json:"volume_average_20"`
	VolumeRatio   optional.Option[float64] `json:"volume_ratio"`

	TrendDirection optional.Option[TrendDirection] `json:"trend_direction"`
	// TrendStrength is 0-100, present only when TrendDirection is set.
	TrendStrength optional.Option[int] `json:"trend_strength"`
}

// MA returns the moving average for the given window, or None if the window
// was not configured or the series was too short.
func (s IndicatorSet) MA(window int) optional.Option[float64] {
	ma, ok := s.MovingAverages[window]
	if !ok {
		return optional.None[float64]()
	}

	return ma
}
