package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// FundamentalData holds the valuation metrics a provider knows for a
// ticker. Vendors differ in coverage; every metric is optional and missing
// metrics simply do not contribute to the fundamental score.
type FundamentalData struct {
	CurrentPrice optional.Option[float64] `json:"current_price"`
	PERatio      optional.Option[float64] `json:"pe_ratio"`
	PBRatio      optional.Option[float64] `json:"pb_ratio"`
	ROE          optional.Option[float64] `json:"roe"`
	DebtToEquity optional.Option[float64] `json:"debt_to_equity"`
	MarketCap    optional.Option[float64] `json:"market_cap"`
}

// DividendData holds a ticker's dividend profile.
type DividendData struct {
	Yield            optional.Option[float64] `json:"dividend_yield"`
	FiveYearAvgYield optional.Option[float64] `json:"five_year_avg_yield"`
	PayoutRatio      optional.Option[float64] `json:"payout_ratio"`
	Rate             optional.Option[float64] `json:"dividend_rate"`
}

// Grade is a letter grade for a single analysis lens.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// FundamentalAssessment is the scored output of the fundamental analyzer.
type FundamentalAssessment struct {
	Data  FundamentalData `json:"fundamental"`
	Score int             `json:"score"`
	Grade Grade           `json:"grade"`
}

// DividendAssessment is the scored output of the dividend analyzer.
type DividendAssessment struct {
	Data  DividendData `json:"dividend"`
	Score int          `json:"score"`
	Grade Grade        `json:"grade"`
}

// Recommendation is the combined buy/sell verdict.
type Recommendation string

const (
	RecommendationStrongBuy  Recommendation = "strong_buy"
	RecommendationBuy        Recommendation = "buy"
	RecommendationHold       Recommendation = "hold"
	RecommendationSell       Recommendation = "sell"
	RecommendationStrongSell Recommendation = "strong_sell"
)

// AllRecommendations lists every Recommendation value. Display mappings are
// verified total against this list.
var AllRecommendations = []Recommendation{
	RecommendationStrongBuy,
	RecommendationBuy,
	RecommendationHold,
	RecommendationSell,
	RecommendationStrongSell,
}

// RecommendationDisplay is presentation metadata for a recommendation.
type RecommendationDisplay struct {
	Label string
	Emoji string
}

var recommendationDisplays = map[Recommendation]RecommendationDisplay{
	RecommendationStrongBuy:  {Label: "STRONG BUY", Emoji: "\U0001F3AF"},
	RecommendationBuy:        {Label: "BUY", Emoji: "✅"},
	RecommendationHold:       {Label: "HOLD", Emoji: "⏸️"},
	RecommendationSell:       {Label: "SELL", Emoji: "\U0001F53B"},
	RecommendationStrongSell: {Label: "STRONG SELL", Emoji: "❌"},
}

// Display returns the presentation metadata for the recommendation.
// The mapping is total over AllRecommendations; an unknown value panics
// rather than degrading to a silent placeholder.
func (r Recommendation) Display() RecommendationDisplay {
	display, ok := recommendationDisplays[r]
	if !ok {
		panic("types: no display metadata for recommendation " + string(r))
	}

	return display
}

// ScoreSummary is the combined verdict across the three analysis lenses.
type ScoreSummary struct {
	// TotalScore is the weighted combination on a 0-100 scale.
	TotalScore float64 `json:"total_score"`
	// TechnicalScore, FundamentalScore and DividendScore are the per-lens
	// contributions on a 0-100 scale before weighting.
	TechnicalScore   float64 `json:"technical_score"`
	FundamentalScore float64 `json:"fundamental_score"`
	DividendScore    float64 `json:"dividend_score"`
	// Recommendation is the verdict derived from TotalScore.
	Recommendation Recommendation `json:"recommendation"`
}

// Report is the full output of one analysis request. It is a derived value
// with no independent identity beyond its ID; it is recomputed per request
// and safe to serialize as-is.
type Report struct {
	ID          string                `json:"id"`
	Ticker      string                `json:"ticker"`
	GeneratedAt time.Time             `json:"generated_at"`
	AsOfDate    time.Time             `json:"as_of_date"`
	Technical   IndicatorSet          `json:"technical"`
	Signals     []Signal              `json:"signals"`
	Fundamental FundamentalAssessment `json:"fundamental"`
	Dividend    DividendAssessment    `json:"dividend"`
	Score       ScoreSummary          `json:"score"`
}
