package analysis

import (
	"github.com/warrenlab/warren/internal/types"
)

// Yield tiers and payout-ratio bounds for the dividend lens.
const (
	yieldHigh   = 0.05
	yieldMedium = 0.03
	yieldLow    = 0.01

	payoutSustainable   = 0.5
	payoutUnsustainable = 1.0
)

// Dividend scores a ticker's dividend profile.
type Dividend struct{}

// NewDividend creates a dividend analyzer.
func NewDividend() *Dividend {
	return &Dividend{}
}

// Analyze grades the yield tier, then adjusts the score by payout
// sustainability. A ticker with no yield data grades F.
func (d *Dividend) Analyze(data types.DividendData) types.DividendAssessment {
	score := 0
	grade := types.GradeF

	if data.Yield.IsSome() {
		dividendYield := data.Yield.Unwrap()

		switch {
		case dividendYield > yieldHigh:
			score += 3
			grade = types.GradeA
		case dividendYield > yieldMedium:
			score += 2
			grade = types.GradeB
		case dividendYield > yieldLow:
			score += 1
			grade = types.GradeC
		default:
			grade = types.GradeD
		}
	}

	if data.PayoutRatio.IsSome() {
		payout := data.PayoutRatio.Unwrap()

		switch {
		case payout < payoutSustainable:
			score++
		case payout > payoutUnsustainable:
			score--
		}
	}

	return types.DividendAssessment{
		Data:  data,
		Score: score,
		Grade: grade,
	}
}
