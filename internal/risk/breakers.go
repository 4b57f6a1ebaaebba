package risk

import (
	"fmt"

	"RiskDesk/internal/domain/models"
)

// Breaker thresholds. Every comparison is inclusive: a drawdown of exactly
// 20% trips MAX_DRAWDOWN.
const (
	maxDrawdownTrip       = 20.0
	dailyLossTrip         = -3.0
	weeklyLossTrip        = -5.0
	consecutiveLossesTrip = 5
	vixSpikeTrip          = 35.0
)

// BreakerInput is the portfolio telemetry the breaker bank inspects.
type BreakerInput struct {
	Drawdown          models.DrawdownState
	DailyPnL          float64
	WeeklyPnL         float64
	ConsecutiveLosses int
	VIX               *float64
}

// CircuitBreakerBank evaluates five independent tripwires. Breakers never
// interact; each reports its own trigger and demanded action.
type CircuitBreakerBank struct{}

func NewCircuitBreakerBank() *CircuitBreakerBank { return &CircuitBreakerBank{} }

// Evaluate runs every breaker. The VIX breaker only appears when a VIX
// reading was supplied.
func (b *CircuitBreakerBank) Evaluate(in BreakerInput) []models.CircuitBreaker {
	breakers := []models.CircuitBreaker{
		{
			Name:         "MAX_DRAWDOWN",
			Threshold:    maxDrawdownTrip,
			CurrentValue: in.Drawdown.CurrentDrawdown,
			Triggered:    in.Drawdown.CurrentDrawdown >= maxDrawdownTrip,
			Action:       models.BreakerHaltNew,
			Message:      fmt.Sprintf("drawdown %.1f%% vs limit %.0f%%", in.Drawdown.CurrentDrawdown, maxDrawdownTrip),
		},
		{
			Name:         "DAILY_LOSS",
			Threshold:    dailyLossTrip,
			CurrentValue: in.DailyPnL,
			Triggered:    in.DailyPnL <= dailyLossTrip,
			Action:       models.BreakerHaltNew,
			Message:      fmt.Sprintf("daily pnl %.2f%% vs limit %.0f%%", in.DailyPnL, dailyLossTrip),
		},
		{
			Name:         "WEEKLY_LOSS",
			Threshold:    weeklyLossTrip,
			CurrentValue: in.WeeklyPnL,
			Triggered:    in.WeeklyPnL <= weeklyLossTrip,
			Action:       models.BreakerReduceSize,
			Message:      fmt.Sprintf("weekly pnl %.2f%% vs limit %.0f%%", in.WeeklyPnL, weeklyLossTrip),
		},
		{
			Name:         "CONSECUTIVE_LOSSES",
			Threshold:    consecutiveLossesTrip,
			CurrentValue: float64(in.ConsecutiveLosses),
			Triggered:    in.ConsecutiveLosses >= consecutiveLossesTrip,
			Action:       models.BreakerHaltNew,
			Message:      fmt.Sprintf("%d consecutive losses vs limit %d", in.ConsecutiveLosses, consecutiveLossesTrip),
		},
	}

	if in.VIX != nil {
		breakers = append(breakers, models.CircuitBreaker{
			Name:         "VIX_SPIKE",
			Threshold:    vixSpikeTrip,
			CurrentValue: *in.VIX,
			Triggered:    *in.VIX >= vixSpikeTrip,
			Action:       models.BreakerReduceSize,
			Message:      fmt.Sprintf("vix %.1f vs limit %.0f", *in.VIX, vixSpikeTrip),
		})
	}

	return breakers
}
