package indicator

import (
	"github.com/go-playground/validator/v10"

	"github.com/warrenlab/warren/pkg/errors"
)

// Config holds the tunable parameters of the indicator engine. Zero values
// are filled with defaults before validation, so a partially specified
// config is fine; an out-of-range value fails fast at engine construction.
type Config struct {
	// RSIPeriod is the lookback for the relative strength index.
	RSIPeriod int `yaml:"rsi_period" json:"rsi_period" validate:"gt=0"`
	// MovingAverageWindows are the SMA window lengths to compute.
	MovingAverageWindows []int `yaml:"moving_average_windows" json:"moving_average_windows" validate:"min=1,dive,gt=0"`
	// BollingerPeriod is the window for the Bollinger middle band and its
	// standard deviation. At least 2 so a sample deviation exists.
	BollingerPeriod int `yaml:"bollinger_period" json:"bollinger_period" validate:"gte=2"`
	// BollingerStdMultiplier widens the bands around the middle.
	BollingerStdMultiplier float64 `yaml:"bollinger_std_multiplier" json:"bollinger_std_multiplier" validate:"gt=0"`
	// SupportResistanceLookback bounds the window for support/resistance.
	SupportResistanceLookback int `yaml:"support_resistance_lookback" json:"support_resistance_lookback" validate:"gt=0"`
	// VolumeAverageWindow is the window for the volume moving average.
	VolumeAverageWindow int `yaml:"volume_average_window" json:"volume_average_window" validate:"gt=0"`
}

// MACD periods are the conventional 12/26/9 and are not configurable.
const (
	macdFastSpan   = 12
	macdSlowSpan   = 26
	macdSignalSpan = 9
)

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:                 14,
		MovingAverageWindows:      []int{20, 50, 200},
		BollingerPeriod:           20,
		BollingerStdMultiplier:    2.0,
		SupportResistanceLookback: 50,
		VolumeAverageWindow:       20,
	}
}

// withDefaults fills unset fields with the default values.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()

	if c.RSIPeriod == 0 {
		c.RSIPeriod = defaults.RSIPeriod
	}

	if len(c.MovingAverageWindows) == 0 {
		c.MovingAverageWindows = defaults.MovingAverageWindows
	}

	if c.BollingerPeriod == 0 {
		c.BollingerPeriod = defaults.BollingerPeriod
	}

	if c.BollingerStdMultiplier == 0 {
		c.BollingerStdMultiplier = defaults.BollingerStdMultiplier
	}

	if c.SupportResistanceLookback == 0 {
		c.SupportResistanceLookback = defaults.SupportResistanceLookback
	}

	if c.VolumeAverageWindow == 0 {
		c.VolumeAverageWindow = defaults.VolumeAverageWindow
	}

	return c
}

// Validate checks the config ranges.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid indicator config", err)
	}

	return nil
}
