package render

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/warrenlab/warren/internal/types"
)

type RendererTestSuite struct {
	suite.Suite
	renderer *Renderer
}

func TestRendererSuite(t *testing.T) {
	suite.Run(t, new(RendererTestSuite))
}

func (suite *RendererTestSuite) SetupTest() {
	suite.renderer = NewRenderer()
}

func (suite *RendererTestSuite) sampleReport() types.Report {
	return types.Report{
		ID:          "test-id",
		Ticker:      "AAPL",
		GeneratedAt: time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC),
		AsOfDate:    time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Technical: types.IndicatorSet{
			LatestPrice: 195.87,
			MovingAverages: map[int]optional.Option[float64]{
				20:  optional.Some(190.12),
				50:  optional.Some(185.40),
				200: optional.None[float64](),
			},
			RSI:            optional.Some(72.5),
			RSISignal:      optional.Some(types.RSISignalOverbought),
			MACD:           optional.Some(1.23),
			MACDSignal:     optional.Some(0.98),
			SupportLevel:   optional.Some(180.0),
			TrendDirection: optional.Some(types.TrendStrongBullish),
			TrendStrength:  optional.Some(90),
		},
		Signals: []types.Signal{
			{Type: types.SignalTypeBuy, Indicator: types.IndicatorTypeTrend, Strength: types.SignalStrengthStrong, Message: "Strong bullish trend, all moving averages aligned"},
		},
		Fundamental: types.FundamentalAssessment{
			Data: types.FundamentalData{
				PERatio:   optional.Some(28.4),
				MarketCap: optional.Some(2.85e12),
			},
			Score: 2,
			Grade: types.GradeC,
		},
		Dividend: types.DividendAssessment{
			Data: types.DividendData{
				Yield: optional.Some(0.0055),
			},
			Score: 1,
			Grade: types.GradeC,
		},
		Score: types.ScoreSummary{
			TotalScore:       64.0,
			TechnicalScore:   70,
			FundamentalScore: 25,
			DividendScore:    40,
			Recommendation:   types.RecommendationBuy,
		},
	}
}

func (suite *RendererTestSuite) TestRenderContainsAllSections() {
	out := suite.renderer.Render(suite.sampleReport())

	for _, expected := range []string{
		"AAPL - analysis as of 2024-06-03",
		"Technical",
		"Signals",
		"Fundamentals",
		"Dividend",
		"Score",
		"BUY",
	} {
		suite.Contains(out, expected)
	}
}

func (suite *RendererTestSuite) TestRenderValues() {
	out := suite.renderer.Render(suite.sampleReport())

	suite.Contains(out, "$195.87")
	suite.Contains(out, "STRONG BULLISH")
	suite.Contains(out, "strength 90/100")
	suite.Contains(out, "72.50 (overbought)")
	suite.Contains(out, "$2.85T")
	suite.Contains(out, "0.55%")
	// MA200 was unavailable.
	suite.Contains(out, "N/A")
	suite.Contains(out, "Strong bullish trend")
}

func (suite *RendererTestSuite) TestRenderNoSignals() {
	report := suite.sampleReport()
	report.Signals = nil

	suite.Contains(suite.renderer.Render(report), "none")
}

func (suite *RendererTestSuite) TestJSON() {
	out, err := JSON(suite.sampleReport())
	suite.Require().NoError(err)

	var decoded types.Report
	suite.Require().NoError(json.Unmarshal([]byte(out), &decoded))
	suite.Equal("test-id", decoded.ID)
	suite.Equal(types.RecommendationBuy, decoded.Score.Recommendation)
	suite.Equal(72.5, decoded.Technical.RSI.Unwrap())
	// Unavailable indicators stay null, not zero.
	suite.True(decoded.Technical.MACDHistogram.IsNone())
}

func (suite *RendererTestSuite) TestFormatMarketCap() {
	suite.Equal("$2.85T", FormatMarketCap(2.85e12))
	suite.Equal("$315.5B", FormatMarketCap(3.155e11))
	suite.Equal("$42M", FormatMarketCap(4.2e7))
	suite.Equal("$950000", FormatMarketCap(9.5e5))
}

func (suite *RendererTestSuite) TestFormatPercent() {
	suite.Equal("3.00%", FormatPercent(0.03))
}
