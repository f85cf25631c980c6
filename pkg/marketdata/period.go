package marketdata

import (
	"strconv"
	"strings"
	"time"

	"github.com/warrenlab/warren/pkg/errors"
)

// Period is a trailing lookback window expressed as a count of months or
// years, e.g. "6m", "1y", "2y".
type Period string

const (
	PeriodSixMonths Period = "6m"
	PeriodOneYear   Period = "1y"
	PeriodTwoYears  Period = "2y"
	PeriodFiveYears Period = "5y"
)

// ParsePeriod parses a period string of the form "<n>m" or "<n>y".
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if err := p.validate(); err != nil {
		return "", err
	}

	return p, nil
}

func (p Period) validate() error {
	s := string(p)
	if len(s) < 2 {
		return errors.Newf(errors.ErrCodeInvalidLookback, "invalid period %q: expected <n>m or <n>y", s)
	}

	unit := s[len(s)-1]
	if unit != 'm' && unit != 'y' {
		return errors.Newf(errors.ErrCodeInvalidLookback, "invalid period unit %q: expected m or y", string(unit))
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 1 {
		return errors.Newf(errors.ErrCodeInvalidLookback, "invalid period count in %q", s)
	}

	return nil
}

// Start returns the beginning of the period, counted back from now. A
// period that would not pass ParsePeriod yields now itself, so the
// resulting window is empty rather than a panic.
func (p Period) Start(now time.Time) time.Time {
	if p.validate() != nil {
		return now
	}

	s := string(p)
	n, _ := strconv.Atoi(s[:len(s)-1])

	if s[len(s)-1] == 'y' {
		return now.AddDate(-n, 0, 0)
	}

	return now.AddDate(0, -n, 0)
}
