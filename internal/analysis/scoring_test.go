package analysis

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/warrenlab/warren/internal/types"
)

type ScorerTestSuite struct {
	suite.Suite

	scorer *Scorer
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerTestSuite))
}

func (suite *ScorerTestSuite) SetupTest() {
	scorer, err := NewScorer(DefaultWeights())
	suite.Require().NoError(err)
	suite.scorer = scorer
}

func (suite *ScorerTestSuite) TestDefaultWeightsAreValid() {
	suite.NoError(DefaultWeights().Validate())
}

func (suite *ScorerTestSuite) TestWeightsMustSumToOne() {
	_, err := NewScorer(Weights{Technical: 0.5, Fundamental: 0.5, Dividend: 0.5})
	suite.Error(err)
}

func (suite *ScorerTestSuite) TestWeightsMustBeInRange() {
	_, err := NewScorer(Weights{Technical: 1.5, Fundamental: -0.5, Dividend: 0})
	suite.Error(err)
}

func (suite *ScorerTestSuite) TestNeutralInputsLandOnHold() {
	summary := suite.scorer.Combine(
		nil,
		types.FundamentalAssessment{Score: 4},
		types.DividendAssessment{Score: 1},
	)

	// 0.4*50 + 0.4*50 + 0.2*40 = 48
	suite.InDelta(48.0, summary.TotalScore, 1e-9)
	suite.Equal(types.RecommendationHold, summary.Recommendation)
}

func (suite *ScorerTestSuite) TestBuySignalsRaiseTechnicalScore() {
	signals := []types.Signal{
		{Type: types.SignalTypeBuy, Strength: types.SignalStrengthStrong},
		{Type: types.SignalTypeBuy, Strength: types.SignalStrengthMedium},
	}

	summary := suite.scorer.Combine(
		signals,
		types.FundamentalAssessment{Score: 8},
		types.DividendAssessment{Score: 4},
	)

	suite.InDelta(80.0, summary.TechnicalScore, 1e-9)
	suite.InDelta(100.0, summary.FundamentalScore, 1e-9)
	suite.InDelta(100.0, summary.DividendScore, 1e-9)
	// 0.4*80 + 0.4*100 + 0.2*100 = 92
	suite.Equal(types.RecommendationStrongBuy, summary.Recommendation)
}

func (suite *ScorerTestSuite) TestSellSignalsLowerTechnicalScore() {
	signals := []types.Signal{
		{Type: types.SignalTypeSell, Strength: types.SignalStrengthStrong},
		{Type: types.SignalTypeSell, Strength: types.SignalStrengthWeak},
	}

	summary := suite.scorer.Combine(
		signals,
		types.FundamentalAssessment{Score: 0},
		types.DividendAssessment{Score: -1},
	)

	suite.InDelta(25.0, summary.TechnicalScore, 1e-9)
	suite.InDelta(0.0, summary.FundamentalScore, 1e-9)
	suite.InDelta(0.0, summary.DividendScore, 1e-9)
	// 0.4*25 = 10
	suite.Equal(types.RecommendationStrongSell, summary.Recommendation)
}

func (suite *ScorerTestSuite) TestConflictingSignalsOffset() {
	signals := []types.Signal{
		{Type: types.SignalTypeBuy, Strength: types.SignalStrengthMedium},
		{Type: types.SignalTypeSell, Strength: types.SignalStrengthMedium},
	}

	summary := suite.scorer.Combine(
		signals,
		types.FundamentalAssessment{Score: 4},
		types.DividendAssessment{Score: 1},
	)

	suite.InDelta(50.0, summary.TechnicalScore, 1e-9)
}

func (suite *ScorerTestSuite) TestTechnicalScoreClamped() {
	signals := []types.Signal{
		{Type: types.SignalTypeBuy, Strength: types.SignalStrengthStrong},
		{Type: types.SignalTypeBuy, Strength: types.SignalStrengthStrong},
		{Type: types.SignalTypeBuy, Strength: types.SignalStrengthStrong},
	}

	summary := suite.scorer.Combine(
		signals,
		types.FundamentalAssessment{},
		types.DividendAssessment{},
	)

	suite.InDelta(100.0, summary.TechnicalScore, 1e-9)
}
