package analysis

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/pkg/errors"
)

// Weights control how much each lens contributes to the total score.
// They must sum to 1.
type Weights struct {
	Technical   float64 `yaml:"technical" json:"technical" validate:"gte=0,lte=1"`
	Fundamental float64 `yaml:"fundamental" json:"fundamental" validate:"gte=0,lte=1"`
	Dividend    float64 `yaml:"dividend" json:"dividend" validate:"gte=0,lte=1"`
}

// DefaultWeights favors the technical and fundamental lenses equally.
func DefaultWeights() Weights {
	return Weights{
		Technical:   0.4,
		Fundamental: 0.4,
		Dividend:    0.2,
	}
}

// Validate checks ranges and that the weights form a convex combination.
func (w Weights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid scoring weights", err)
	}

	if math.Abs(w.Technical+w.Fundamental+w.Dividend-1.0) > 1e-9 {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"scoring weights must sum to 1, got %.3f", w.Technical+w.Fundamental+w.Dividend)
	}

	return nil
}

// Signal contributions to the technical score, by strength.
var signalPoints = map[types.SignalStrength]float64{
	types.SignalStrengthWeak:   5,
	types.SignalStrengthMedium: 10,
	types.SignalStrengthStrong: 20,
}

// Recommendation cutoffs on the 0-100 total score.
const (
	strongBuyCutoff = 80.0
	buyCutoff       = 60.0
	holdCutoff      = 40.0
	sellCutoff      = 20.0
)

// Scorer merges the three lens outputs into one recommendation. The
// generator may emit conflicting signals; this is where they are weighed
// against each other.
type Scorer struct {
	weights Weights
}

// NewScorer validates the weights and returns a scorer.
func NewScorer(weights Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	return &Scorer{weights: weights}, nil
}

// Combine produces the weighted total score and its recommendation. The
// signal list already carries the technical lens's verdicts, so the
// indicator snapshot itself does not enter the arithmetic.
func (s *Scorer) Combine(
	signals []types.Signal,
	fundamental types.FundamentalAssessment,
	dividend types.DividendAssessment,
) types.ScoreSummary {
	technicalScore := technicalScore(signals)
	fundamentalScore := clampScore(float64(fundamental.Score) / fundamentalMaxScore * 100)
	dividendScore := dividendScore(dividend.Score)

	total := s.weights.Technical*technicalScore +
		s.weights.Fundamental*fundamentalScore +
		s.weights.Dividend*dividendScore

	return types.ScoreSummary{
		TotalScore:       total,
		TechnicalScore:   technicalScore,
		FundamentalScore: fundamentalScore,
		DividendScore:    dividendScore,
		Recommendation:   recommendationFor(total),
	}
}

// technicalScore starts from a neutral 50 and moves by the strength of
// each signal: buys push up, sells push down.
func technicalScore(signals []types.Signal) float64 {
	score := 50.0

	for _, sig := range signals {
		points := signalPoints[sig.Strength]
		if sig.Type == types.SignalTypeSell {
			points = -points
		}

		score += points
	}

	return clampScore(score)
}

// dividendScore normalizes the raw dividend score (range -1..4) to 0-100.
func dividendScore(raw int) float64 {
	return clampScore(float64(raw+1) / 5 * 100)
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func recommendationFor(total float64) types.Recommendation {
	switch {
	case total >= strongBuyCutoff:
		return types.RecommendationStrongBuy
	case total >= buyCutoff:
		return types.RecommendationBuy
	case total >= holdCutoff:
		return types.RecommendationHold
	case total >= sellCutoff:
		return types.RecommendationSell
	default:
		return types.RecommendationStrongSell
	}
}
