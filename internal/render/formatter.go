package render

import (
	"encoding/json"
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"

	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/pkg/errors"
)

// JSON renders the report as indented JSON, for piping into other tools.
func JSON(report types.Report) (string, error) {
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, "failed to encode report", err)
	}

	return string(encoded), nil
}

const notAvailable = "N/A"

// Large-number abbreviation boundaries.
var (
	trillion = decimal.New(1, 12)
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
)

// FormatMarketCap abbreviates a dollar amount to a trillions/billions/
// millions suffix, e.g. 2.85e12 -> "$2.85T".
func FormatMarketCap(value float64) string {
	d := decimal.NewFromFloat(value)

	switch {
	case d.GreaterThanOrEqual(trillion):
		return "$" + d.DivRound(trillion, 2).String() + "T"
	case d.GreaterThanOrEqual(billion):
		return "$" + d.DivRound(billion, 2).String() + "B"
	case d.GreaterThanOrEqual(million):
		return "$" + d.DivRound(million, 2).String() + "M"
	default:
		return "$" + d.Round(2).String()
	}
}

// FormatPrice renders a price with two decimal places.
func FormatPrice(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

// FormatPercent renders a 0-1 fraction as a percentage.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// FormatRatio renders a plain ratio with two decimal places.
func FormatRatio(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatOptional(value optional.Option[float64], format func(float64) string) string {
	if value.IsNone() {
		return notAvailable
	}

	return format(value.Unwrap())
}
