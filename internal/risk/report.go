package risk

import (
	"fmt"
	"time"

	"RiskDesk/internal/domain/models"
)

// ReportGenerator assembles the institutional risk report from the leaf
// risk modules. Pure and reentrant; all caching belongs to the caller.
type ReportGenerator struct {
	kelly    *KellyCalculator
	drawdown *DrawdownTracker
	breakers *CircuitBreakerBank
	budget   *RiskBudgetTracker
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{
		kelly:    NewKellyCalculator(),
		drawdown: NewDrawdownTracker(),
		breakers: NewCircuitBreakerBank(),
		budget:   NewRiskBudgetTracker(),
	}
}

// NewReportGeneratorWith lets the caller supply a configured budget tracker.
func NewReportGeneratorWith(budget *RiskBudgetTracker) *ReportGenerator {
	g := NewReportGenerator()
	g.budget = budget
	return g
}

// Generate recomputes the full report from portfolio state as of now.
func (g *ReportGenerator) Generate(state models.PortfolioState, now time.Time) models.InstitutionalRiskReport {
	kelly := g.kelly.FromTrades(state.Trades, kellyConfidenceFor(len(state.Trades)))
	dd := g.drawdown.Analyze(state.EquityCurve)
	breakers := g.breakers.Evaluate(BreakerInput{
		Drawdown:          dd,
		DailyPnL:          state.DailyPnL,
		WeeklyPnL:         state.WeeklyPnL,
		ConsecutiveLosses: state.ConsecutiveLosses,
		VIX:               state.VIX,
	})
	budget := g.budget.Assess(state.Positions)

	report := models.InstitutionalRiskReport{
		GeneratedAt:     now,
		Portfolio:       summarize(state, dd),
		Kelly:           kelly,
		Drawdown:        dd,
		CircuitBreakers: breakers,
		Budget:          budget,
		TradingStatus:   tradingStatusFor(breakers, dd),
	}
	report.Alerts = g.alerts(report)
	report.Recommendations = g.recommendations(report)
	return report
}

// kellyConfidenceFor grades statistical confidence purely by sample depth.
func kellyConfidenceFor(trades int) models.Confidence {
	switch {
	case trades >= 50:
		return models.ConfidenceHigh
	case trades >= 20:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func summarize(state models.PortfolioState, dd models.DrawdownState) models.PortfolioSummary {
	var wins int
	for _, t := range state.Trades {
		if t.PnL > 0 {
			wins++
		}
	}
	var winRate float64
	if len(state.Trades) > 0 {
		winRate = float64(wins) / float64(len(state.Trades))
	}

	var openRisk float64
	for _, p := range state.Positions {
		openRisk += p.Risk
	}

	var totalReturn float64
	if len(state.EquityCurve) > 0 {
		if first := state.EquityCurve[0].Equity; first > 0 {
			totalReturn = (dd.CurrentEquity - first) / first * 100
		}
	}

	return models.PortfolioSummary{
		Equity:      dd.CurrentEquity,
		TotalReturn: totalReturn,
		TradeCount:  len(state.Trades),
		WinRate:     winRate,
		OpenRisk:    openRisk,
	}
}

// tradingStatusFor derives the overall verdict. Any halting breaker wins;
// otherwise any size-reduction signal or drawdown stress downgrades.
func tradingStatusFor(breakers []models.CircuitBreaker, dd models.DrawdownState) models.TradingStatus {
	reduced := dd.Status != models.DrawdownHealthy
	for _, b := range breakers {
		if !b.Triggered {
			continue
		}
		switch b.Action {
		case models.BreakerHaltNew, models.BreakerCloseAll:
			return models.TradingHalted
		case models.BreakerReduceSize:
			reduced = true
		}
	}
	if reduced {
		return models.TradingReduced
	}
	return models.TradingNormal
}

func (g *ReportGenerator) alerts(r models.InstitutionalRiskReport) []models.RiskAlert {
	alerts := make([]models.RiskAlert, 0, 4)

	for _, b := range r.CircuitBreakers {
		if !b.Triggered {
			continue
		}
		level := models.AlertWarning
		if b.Action == models.BreakerHaltNew || b.Action == models.BreakerCloseAll {
			level = models.AlertCritical
		}
		alerts = append(alerts, models.RiskAlert{Level: level, Source: b.Name, Message: b.Message})
	}

	switch r.Drawdown.Status {
	case models.DrawdownCaution:
		alerts = append(alerts, models.RiskAlert{
			Level: models.AlertInfo, Source: "DRAWDOWN",
			Message: fmt.Sprintf("drawdown %.1f%% entering caution zone", r.Drawdown.CurrentDrawdown),
		})
	case models.DrawdownWarning, models.DrawdownCritical:
		alerts = append(alerts, models.RiskAlert{
			Level: models.AlertWarning, Source: "DRAWDOWN",
			Message: fmt.Sprintf("drawdown %.1f%% (%s)", r.Drawdown.CurrentDrawdown, r.Drawdown.Status),
		})
	case models.DrawdownCircuitBreaker:
		alerts = append(alerts, models.RiskAlert{
			Level: models.AlertCritical, Source: "DRAWDOWN",
			Message: fmt.Sprintf("drawdown %.1f%% breached the circuit-breaker level", r.Drawdown.CurrentDrawdown),
		})
	}

	if r.Budget.Status == models.BudgetMaxed {
		alerts = append(alerts, models.RiskAlert{
			Level: models.AlertWarning, Source: "RISK_BUDGET",
			Message: fmt.Sprintf("risk budget fully deployed (%.1f%% used)", r.Budget.UsedBudget),
		})
	}
	if r.Kelly.EdgeQuality == models.EdgeNegative {
		alerts = append(alerts, models.RiskAlert{
			Level: models.AlertWarning, Source: "KELLY",
			Message: "trade statistics show a negative edge",
		})
	}

	return alerts
}

func (g *ReportGenerator) recommendations(r models.InstitutionalRiskReport) []string {
	var recs []string

	switch r.TradingStatus {
	case models.TradingHalted:
		recs = append(recs, "halt new positions until triggered breakers reset")
	case models.TradingReduced:
		recs = append(recs, fmt.Sprintf("reduce position sizes to %.0f%% of normal",
			r.Drawdown.Status.SizeMultiplier()*100))
	}

	if r.Kelly.Fallback {
		recs = append(recs, fmt.Sprintf("only %d closed trades on record; sizing stays at the %.1f%% conservative default until 10 trades accrue",
			r.Kelly.SampleSize, fallbackRisk*100))
	} else if r.Kelly.EdgeQuality == models.EdgeStrong {
		recs = append(recs, fmt.Sprintf("edge is strong (full Kelly %.1f%%); recommended risk %.2f%% per trade",
			r.Kelly.FullKelly*100, r.Kelly.MaxPosition))
	}

	switch r.Budget.Status {
	case models.BudgetUnderutilized:
		recs = append(recs, fmt.Sprintf("risk budget underutilized (%.0f%% of effective budget); capacity for new positions",
			r.Budget.Utilization*100))
	case models.BudgetStretched, models.BudgetMaxed:
		recs = append(recs, "risk budget stretched; avoid adding correlated exposure")
	}

	if len(recs) == 0 {
		recs = append(recs, "risk posture nominal; no action required")
	}
	return recs
}
