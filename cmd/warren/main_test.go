package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/warrenlab/warren/internal/types"
)

type MainTestSuite struct {
	suite.Suite
}

func TestMainSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}

func (suite *MainTestSuite) report() types.Report {
	return types.Report{
		ID:     "report-1",
		Ticker: "AAPL",
		Score: types.ScoreSummary{
			TotalScore:     64,
			Recommendation: types.RecommendationBuy,
		},
	}
}

func (suite *MainTestSuite) TestRenderReportJSON() {
	out, err := renderReport(suite.report(), true)
	suite.Require().NoError(err)

	var decoded types.Report
	suite.Require().NoError(json.Unmarshal([]byte(out), &decoded))
	suite.Equal("report-1", decoded.ID)
	suite.Equal(types.RecommendationBuy, decoded.Score.Recommendation)
}

func (suite *MainTestSuite) TestRenderReportStyled() {
	out, err := renderReport(suite.report(), false)
	suite.Require().NoError(err)

	suite.Contains(out, "AAPL")
	suite.Contains(out, "BUY")
	suite.NotContains(out, `"id"`)
}