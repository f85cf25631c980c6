package types

// SignalType is the direction of a trading signal.
type SignalType string

const (
	SignalTypeBuy  SignalType = "buy"
	SignalTypeSell SignalType = "sell"
)

// SignalStrength grades how much weight a signal carries.
type SignalStrength string

const (
	SignalStrengthWeak   SignalStrength = "weak"
	SignalStrengthMedium SignalStrength = "medium"
	SignalStrengthStrong SignalStrength = "strong"
)

// Signal is one discrete, human-readable trading signal derived from the
// indicator set. Signals are independent and may conflict; arbitration is
// the combiner's job, not the generator's.
type Signal struct {
	// Type is the direction of the signal.
	Type SignalType `json:"type"`
	// Indicator names the indicator the signal came from.
	Indicator IndicatorType `json:"indicator"`
	// Strength grades the signal.
	Strength SignalStrength `json:"strength"`
	// Message is the human-readable rationale.
	Message string `json:"message"`
}
