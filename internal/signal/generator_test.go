package signal

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/warrenlab/warren/internal/types"
)

type GeneratorTestSuite struct {
	suite.Suite

	generator *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func (suite *GeneratorTestSuite) SetupTest() {
	suite.generator = NewGenerator()
}

func (suite *GeneratorTestSuite) TestEmptySetProducesNoSignals() {
	signals := suite.generator.Generate(types.IndicatorSet{})
	suite.Empty(signals)
}

func (suite *GeneratorTestSuite) TestRSIOversoldEmitsBuy() {
	set := types.IndicatorSet{
		RSI:       optional.Some(25.0),
		RSISignal: optional.Some(types.RSISignalOversold),
	}

	signals := suite.generator.Generate(set)
	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(types.IndicatorTypeRSI, signals[0].Indicator)
	suite.Equal(types.SignalStrengthMedium, signals[0].Strength)
}

func (suite *GeneratorTestSuite) TestRSIOverboughtEmitsSell() {
	set := types.IndicatorSet{
		RSI:       optional.Some(80.0),
		RSISignal: optional.Some(types.RSISignalOverbought),
	}

	signals := suite.generator.Generate(set)
	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeSell, signals[0].Type)
	suite.Equal(types.SignalStrengthMedium, signals[0].Strength)
}

func (suite *GeneratorTestSuite) TestRSINeutralEmitsNothing() {
	set := types.IndicatorSet{
		RSI:       optional.Some(55.0),
		RSISignal: optional.Some(types.RSISignalNeutral),
	}

	suite.Empty(suite.generator.Generate(set))
}

func (suite *GeneratorTestSuite) TestMACDBullishCrossover() {
	set := types.IndicatorSet{
		MACD:          optional.Some(1.5),
		MACDSignal:    optional.Some(1.0),
		MACDHistogram: optional.Some(0.5),
	}

	signals := suite.generator.Generate(set)
	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(types.IndicatorTypeMACD, signals[0].Indicator)
	suite.Equal(types.SignalStrengthWeak, signals[0].Strength)
}

func (suite *GeneratorTestSuite) TestMACDBearishCrossover() {
	set := types.IndicatorSet{
		MACD:          optional.Some(-1.5),
		MACDSignal:    optional.Some(-1.0),
		MACDHistogram: optional.Some(-0.5),
	}

	signals := suite.generator.Generate(set)
	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeSell, signals[0].Type)
}

func (suite *GeneratorTestSuite) TestMACDConditionsMustHoldJointly() {
	// MACD above its signal line but histogram non-positive: both
	// comparisons must hold together, so nothing is emitted.
	set := types.IndicatorSet{
		MACD:          optional.Some(1.5),
		MACDSignal:    optional.Some(1.0),
		MACDHistogram: optional.Some(-0.1),
	}

	suite.Empty(suite.generator.Generate(set))
}

func (suite *GeneratorTestSuite) TestMACDMissingSignalLineEmitsNothing() {
	set := types.IndicatorSet{
		MACD:          optional.Some(1.5),
		MACDHistogram: optional.Some(0.5),
	}

	suite.Empty(suite.generator.Generate(set))
}

func (suite *GeneratorTestSuite) TestStrongBullishTrendEmitsStrongBuy() {
	set := types.IndicatorSet{
		TrendDirection: optional.Some(types.TrendStrongBullish),
		TrendStrength:  optional.Some(90),
	}

	signals := suite.generator.Generate(set)
	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(types.IndicatorTypeTrend, signals[0].Indicator)
	suite.Equal(types.SignalStrengthStrong, signals[0].Strength)
}

func (suite *GeneratorTestSuite) TestPlainTrendsEmitNothing() {
	for _, direction := range []types.TrendDirection{
		types.TrendBullish, types.TrendBearish, types.TrendSideways,
	} {
		set := types.IndicatorSet{
			TrendDirection: optional.Some(direction),
		}
		suite.Empty(suite.generator.Generate(set))
	}
}

func (suite *GeneratorTestSuite) TestSupportProximityUsesLatestPrice() {
	// Price 1% above support emits; price 5% above does not.
	near := types.IndicatorSet{
		LatestPrice:  101,
		SupportLevel: optional.Some(100.0),
	}

	signals := suite.generator.Generate(near)
	suite.Require().Len(signals, 1)
	suite.Equal(types.IndicatorTypeSupport, signals[0].Indicator)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)

	far := types.IndicatorSet{
		LatestPrice:  105,
		SupportLevel: optional.Some(100.0),
	}

	suite.Empty(suite.generator.Generate(far))
}

func (suite *GeneratorTestSuite) TestSupportSignalNeedsPresentLevel() {
	set := types.IndicatorSet{LatestPrice: 100}
	suite.Empty(suite.generator.Generate(set))
}

func (suite *GeneratorTestSuite) TestConflictingSignalsCoexist() {
	// Oversold RSI and a strong bearish trend emit both a buy and a sell;
	// the generator does not arbitrate.
	set := types.IndicatorSet{
		LatestPrice:    50,
		RSI:            optional.Some(22.0),
		RSISignal:      optional.Some(types.RSISignalOversold),
		TrendDirection: optional.Some(types.TrendStrongBearish),
		TrendStrength:  optional.Some(90),
		SupportLevel:   optional.Some(40.0),
	}

	signals := suite.generator.Generate(set)
	suite.Require().Len(signals, 2)

	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(types.IndicatorTypeRSI, signals[0].Indicator)
	suite.Equal(types.SignalStrengthMedium, signals[0].Strength)

	suite.Equal(types.SignalTypeSell, signals[1].Type)
	suite.Equal(types.IndicatorTypeTrend, signals[1].Indicator)
	suite.Equal(types.SignalStrengthStrong, signals[1].Strength)
}

func (suite *GeneratorTestSuite) TestRuleOrderFollowsIndicatorOrder() {
	set := types.IndicatorSet{
		LatestPrice:    100.5,
		RSI:            optional.Some(25.0),
		RSISignal:      optional.Some(types.RSISignalOversold),
		MACD:           optional.Some(1.0),
		MACDSignal:     optional.Some(0.5),
		MACDHistogram:  optional.Some(0.5),
		TrendDirection: optional.Some(types.TrendStrongBullish),
		SupportLevel:   optional.Some(100.0),
	}

	signals := suite.generator.Generate(set)
	suite.Require().Len(signals, 4)
	suite.Equal(types.IndicatorTypeRSI, signals[0].Indicator)
	suite.Equal(types.IndicatorTypeMACD, signals[1].Indicator)
	suite.Equal(types.IndicatorTypeTrend, signals[2].Indicator)
	suite.Equal(types.IndicatorTypeSupport, signals[3].Indicator)
}
