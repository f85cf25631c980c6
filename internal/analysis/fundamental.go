// Package analysis holds the fundamental and dividend scoring lenses and
// the combiner that merges them with the technical lens into a single
// recommendation. The lenses are threshold-and-sum tables: every input
// metric is optional and a missing metric simply contributes no points.
package analysis

import (
	"github.com/warrenlab/warren/internal/types"
)

// Valuation thresholds. Lower is better for PE, PB and debt-to-equity;
// higher is better for ROE.
const (
	peGood   = 12.0
	peMedium = 18.0

	pbGood   = 1.5
	pbMedium = 2.5

	roeGood   = 0.20
	roeMedium = 0.15

	debtToEquityGood = 0.5
)

// fundamentalMaxScore is the highest reachable fundamental score: two
// points per metric across PE, PB, ROE and debt-to-equity.
const fundamentalMaxScore = 8

// Fundamental scores valuation metrics against fixed thresholds.
type Fundamental struct{}

// NewFundamental creates a fundamental analyzer.
func NewFundamental() *Fundamental {
	return &Fundamental{}
}

// Analyze sums per-metric points and maps the total to a letter grade.
// Missing metrics never error; they score zero.
func (f *Fundamental) Analyze(data types.FundamentalData) types.FundamentalAssessment {
	score := 0

	if data.PERatio.IsSome() {
		score += scoreLowerIsBetter(data.PERatio.Unwrap(), peGood, peMedium)
	}

	if data.PBRatio.IsSome() {
		score += scoreLowerIsBetter(data.PBRatio.Unwrap(), pbGood, pbMedium)
	}

	if data.ROE.IsSome() {
		score += scoreHigherIsBetter(data.ROE.Unwrap(), roeGood, roeMedium)
	}

	if data.DebtToEquity.IsSome() && data.DebtToEquity.Unwrap() <= debtToEquityGood {
		score += 2
	}

	return types.FundamentalAssessment{
		Data:  data,
		Score: score,
		Grade: fundamentalGrade(score),
	}
}

func scoreLowerIsBetter(value, good, medium float64) int {
	switch {
	case value <= good:
		return 2
	case value <= medium:
		return 1
	default:
		return 0
	}
}

func scoreHigherIsBetter(value, good, medium float64) int {
	switch {
	case value >= good:
		return 2
	case value >= medium:
		return 1
	default:
		return 0
	}
}

func fundamentalGrade(score int) types.Grade {
	switch {
	case score >= 7:
		return types.GradeA
	case score >= 5:
		return types.GradeB
	case score >= 3:
		return types.GradeC
	case score >= 1:
		return types.GradeD
	default:
		return types.GradeF
	}
}
