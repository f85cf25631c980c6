package types

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/warrenlab/warren/pkg/errors"
)

// PricePoint is one trading session's OHLCV record. Immutable once
// constructed; the indicator engine borrows read-only access.
type PricePoint struct {
	// Date is the trading day of this bar. Intraday components are ignored
	// for ordering purposes.
	Date time.Time `json:"date"`
	// Open is the opening price of the session.
	Open float64 `json:"open"`
	// High is the highest traded price of the session.
	High float64 `json:"high"`
	// Low is the lowest traded price of the session.
	Low float64 `json:"low"`
	// Close is the closing price of the session.
	Close float64 `json:"close"`
	// Volume is the number of shares traded.
	Volume int64 `json:"volume"`
	// AdjClose is the dividend/split adjusted close, when the provider
	// supplies one.
	AdjClose optional.Option[float64] `json:"adjusted_close"`
}

// PriceSeries is an ordered sequence of PricePoint, strictly increasing by
// date with no duplicates. Trading calendars may have holes; gaps are fine.
type PriceSeries []PricePoint

// Validate checks the series-level invariants. A violation here is fatal at
// the compute boundary; callers are expected to skip the ticker or surface
// the failure.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return errors.New(errors.ErrCodeEmptySeries, "price series is empty")
	}

	for i, p := range s {
		if p.Open <= 0 || p.High <= 0 || p.Low <= 0 || p.Close <= 0 {
			return errors.Newf(errors.ErrCodeNegativePrice,
				"non-positive price at %s", p.Date.Format("2006-01-02"))
		}

		if p.High < p.Low || p.High < p.Open || p.High < p.Close || p.Low > p.Open || p.Low > p.Close {
			return errors.Newf(errors.ErrCodeInvalidOHLC,
				"OHLC invariant low <= open,close <= high violated at %s", p.Date.Format("2006-01-02"))
		}

		if p.Volume < 0 {
			return errors.Newf(errors.ErrCodeNegativeVolume,
				"negative volume at %s", p.Date.Format("2006-01-02"))
		}

		if i == 0 {
			continue
		}

		prev := s[i-1].Date
		if p.Date.Equal(prev) {
			return errors.Newf(errors.ErrCodeDuplicateDate,
				"duplicate date %s", p.Date.Format("2006-01-02"))
		}

		if p.Date.Before(prev) {
			return errors.Newf(errors.ErrCodeNonAscendingDates,
				"dates not strictly ascending at %s", p.Date.Format("2006-01-02"))
		}
	}

	return nil
}

// Closes returns the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}

	return closes
}

// Volumes returns the session volumes in series order as floats.
func (s PriceSeries) Volumes() []float64 {
	volumes := make([]float64, len(s))
	for i, p := range s {
		volumes[i] = float64(p.Volume)
	}

	return volumes
}

// Latest returns the most recent bar. The series must be non-empty.
func (s PriceSeries) Latest() PricePoint {
	return s[len(s)-1]
}
