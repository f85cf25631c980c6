// Package render turns an analysis report into styled terminal output.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/warrenlab/warren/internal/types"
)

// Style definitions.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	verdictStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			Padding(0, 1)
)

// Renderer produces the terminal view of a report.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the full text report.
func (r *Renderer) Render(report types.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s - analysis as of %s",
		report.Ticker, report.AsOfDate.Format("2006-01-02"))))
	b.WriteString("\n\n")

	r.renderTechnical(&b, report.Technical)
	r.renderSignals(&b, report.Signals)
	r.renderFundamental(&b, report.Fundamental)
	r.renderDividend(&b, report.Dividend)
	r.renderScore(&b, report.Score)

	return b.String()
}

func (r *Renderer) line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(label+":"), value)
}

func (r *Renderer) renderTechnical(b *strings.Builder, set types.IndicatorSet) {
	b.WriteString(sectionStyle.Render("Technical"))
	b.WriteString("\n")

	r.line(b, "Price", FormatPrice(set.LatestPrice))

	if set.TrendDirection.IsSome() {
		display := set.TrendDirection.Unwrap().Display()
		strength := ""

		if set.TrendStrength.IsSome() {
			strength = fmt.Sprintf(" (strength %d/100)", set.TrendStrength.Unwrap())
		}

		r.line(b, "Trend", fmt.Sprintf("%s %s%s", display.Emoji, display.Label, strength))
	} else {
		r.line(b, "Trend", notAvailable)
	}

	windows := make([]int, 0, len(set.MovingAverages))
	for window := range set.MovingAverages {
		windows = append(windows, window)
	}

	sort.Ints(windows)

	for _, window := range windows {
		r.line(b, fmt.Sprintf("MA%d", window), formatOptional(set.MovingAverages[window], FormatPrice))
	}

	rsi := formatOptional(set.RSI, FormatRatio)
	if set.RSISignal.IsSome() {
		rsi += fmt.Sprintf(" (%s)", set.RSISignal.Unwrap())
	}

	r.line(b, "RSI", rsi)
	r.line(b, "MACD", formatOptional(set.MACD, FormatRatio))
	r.line(b, "MACD signal", formatOptional(set.MACDSignal, FormatRatio))
	r.line(b, "Bollinger upper", formatOptional(set.BollingerUpper, FormatPrice))
	r.line(b, "Bollinger lower", formatOptional(set.BollingerLower, FormatPrice))
	r.line(b, "Support", formatOptional(set.SupportLevel, FormatPrice))
	r.line(b, "Resistance", formatOptional(set.ResistanceLevel, FormatPrice))
	r.line(b, "Volume ratio", formatOptional(set.VolumeRatio, FormatRatio))

	b.WriteString("\n")
}

func (r *Renderer) renderSignals(b *strings.Builder, signals []types.Signal) {
	b.WriteString(sectionStyle.Render("Signals"))
	b.WriteString("\n")

	if len(signals) == 0 {
		b.WriteString("  none\n\n")

		return
	}

	for _, s := range signals {
		fmt.Fprintf(b, "  [%s/%s] %s\n", strings.ToUpper(string(s.Type)), strings.ToUpper(string(s.Strength)), s.Message)
	}

	b.WriteString("\n")
}

func (r *Renderer) renderFundamental(b *strings.Builder, assessment types.FundamentalAssessment) {
	b.WriteString(sectionStyle.Render("Fundamentals"))
	b.WriteString("\n")

	r.line(b, "P/E", formatOptional(assessment.Data.PERatio, FormatRatio))
	r.line(b, "P/B", formatOptional(assessment.Data.PBRatio, FormatRatio))
	r.line(b, "ROE", formatOptional(assessment.Data.ROE, FormatPercent))
	r.line(b, "Debt/Equity", formatOptional(assessment.Data.DebtToEquity, FormatRatio))
	r.line(b, "Market cap", formatOptional(assessment.Data.MarketCap, FormatMarketCap))
	r.line(b, "Grade", string(assessment.Grade))

	b.WriteString("\n")
}

func (r *Renderer) renderDividend(b *strings.Builder, assessment types.DividendAssessment) {
	b.WriteString(sectionStyle.Render("Dividend"))
	b.WriteString("\n")

	r.line(b, "Yield", formatOptional(assessment.Data.Yield, FormatPercent))
	r.line(b, "5y avg yield", formatOptional(assessment.Data.FiveYearAvgYield, FormatPercent))
	r.line(b, "Payout ratio", formatOptional(assessment.Data.PayoutRatio, FormatPercent))
	r.line(b, "Annual rate", formatOptional(assessment.Data.Rate, FormatPrice))
	r.line(b, "Grade", string(assessment.Grade))

	b.WriteString("\n")
}

func (r *Renderer) renderScore(b *strings.Builder, score types.ScoreSummary) {
	b.WriteString(sectionStyle.Render("Score"))
	b.WriteString("\n")

	r.line(b, "Technical", fmt.Sprintf("%.1f", score.TechnicalScore))
	r.line(b, "Fundamental", fmt.Sprintf("%.1f", score.FundamentalScore))
	r.line(b, "Dividend", fmt.Sprintf("%.1f", score.DividendScore))
	r.line(b, "Total", fmt.Sprintf("%.1f", score.TotalScore))

	display := score.Recommendation.Display()

	b.WriteString("\n")
	b.WriteString(verdictStyle.Render(fmt.Sprintf("%s %s", display.Emoji, display.Label)))
	b.WriteString("\n")
}
