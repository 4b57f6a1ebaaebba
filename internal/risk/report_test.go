package risk

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskDesk/internal/domain/models"
)

var reportNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func healthyPortfolio() models.PortfolioState {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return models.PortfolioState{
		Trades:      makeTrades(13, 9),
		EquityCurve: curve(start, 100000, 101000, 102500, 104000),
		Positions: []models.OpenPosition{
			{Symbol: "EURUSD", Risk: 1.0, Correlation: 0.2},
			{Symbol: "GOLD", Risk: 1.0, Correlation: -0.1},
		},
		DailyPnL:  0.4,
		WeeklyPnL: 1.1,
	}
}

func TestReportHealthyPortfolioIsNormal(t *testing.T) {
	report := NewReportGenerator().Generate(healthyPortfolio(), reportNow)

	assert.Equal(t, models.TradingNormal, report.TradingStatus)
	assert.Equal(t, reportNow, report.GeneratedAt)
	assert.Equal(t, models.DrawdownHealthy, report.Drawdown.Status)
	assert.Len(t, report.CircuitBreakers, 4)
	for _, b := range report.CircuitBreakers {
		assert.False(t, b.Triggered, b.Name)
	}
	assert.Empty(t, report.Alerts)
	assert.NotEmpty(t, report.Recommendations)
}

func TestReportPortfolioSummary(t *testing.T) {
	report := NewReportGenerator().Generate(healthyPortfolio(), reportNow)

	assert.InDelta(t, 104000, report.Portfolio.Equity, 1e-9)
	assert.InDelta(t, 4.0, report.Portfolio.TotalReturn, 1e-9)
	assert.Equal(t, 22, report.Portfolio.TradeCount)
	assert.InDelta(t, 13.0/22.0, report.Portfolio.WinRate, 1e-9)
	assert.InDelta(t, 2.0, report.Portfolio.OpenRisk, 1e-9)
}

func TestReportHaltedOnBreaker(t *testing.T) {
	state := healthyPortfolio()
	state.DailyPnL = -3.5

	report := NewReportGenerator().Generate(state, reportNow)

	assert.Equal(t, models.TradingHalted, report.TradingStatus)

	var critical bool
	for _, a := range report.Alerts {
		if a.Source == "DAILY_LOSS" && a.Level == models.AlertCritical {
			critical = true
		}
	}
	assert.True(t, critical, "halting breaker raises a critical alert")
	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[0], "halt new positions")
}

func TestReportReducedOnVixSpike(t *testing.T) {
	state := healthyPortfolio()
	vix := 40.0
	state.VIX = &vix

	report := NewReportGenerator().Generate(state, reportNow)

	assert.Equal(t, models.TradingReduced, report.TradingStatus)
	assert.Len(t, report.CircuitBreakers, 5)
}

func TestReportReducedOnDrawdownStress(t *testing.T) {
	state := healthyPortfolio()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	state.EquityCurve = curve(start, 100000, 95000, 93000)

	report := NewReportGenerator().Generate(state, reportNow)

	assert.Equal(t, models.DrawdownCaution, report.Drawdown.Status)
	assert.Equal(t, models.TradingReduced, report.TradingStatus)

	var info bool
	for _, a := range report.Alerts {
		if a.Source == "DRAWDOWN" && a.Level == models.AlertInfo {
			info = true
		}
	}
	assert.True(t, info)
}

func TestReportKellyFallbackRecommendation(t *testing.T) {
	state := healthyPortfolio()
	state.Trades = makeTrades(3, 2)

	report := NewReportGenerator().Generate(state, reportNow)

	assert.True(t, report.Kelly.Fallback)
	var mentioned bool
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "conservative default") {
			mentioned = true
		}
	}
	assert.True(t, mentioned)
}

func TestReportNegativeEdgeAlert(t *testing.T) {
	state := healthyPortfolio()
	// 6 wins at +1R against 16 losses at -1R is a clearly negative edge.
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var trades []models.TradeRecord
	for i := 0; i < 6; i++ {
		trades = append(trades, models.TradeRecord{PnL: 100, Risk: 100, Date: date})
	}
	for i := 0; i < 16; i++ {
		trades = append(trades, models.TradeRecord{PnL: -100, Risk: 100, Date: date})
	}
	state.Trades = trades

	report := NewReportGenerator().Generate(state, reportNow)

	assert.Equal(t, models.EdgeNegative, report.Kelly.EdgeQuality)
	var alerted bool
	for _, a := range report.Alerts {
		if a.Source == "KELLY" {
			alerted = true
		}
	}
	assert.True(t, alerted)
}

func TestKellyConfidenceBySampleDepth(t *testing.T) {
	assert.Equal(t, models.ConfidenceLow, kellyConfidenceFor(19))
	assert.Equal(t, models.ConfidenceMedium, kellyConfidenceFor(20))
	assert.Equal(t, models.ConfidenceMedium, kellyConfidenceFor(49))
	assert.Equal(t, models.ConfidenceHigh, kellyConfidenceFor(50))
}
