package risk

import (
	"RiskDesk/internal/domain/models"
	"RiskDesk/pkg/util"
)

// DrawdownTracker derives the drawdown state machine from an equity curve in
// a single left-to-right scan.
type DrawdownTracker struct{}

func NewDrawdownTracker() *DrawdownTracker { return &DrawdownTracker{} }

// Analyze computes current and maximum drawdown, duration and recovery
// factor. The curve is expected in chronological order.
func (d *DrawdownTracker) Analyze(curve []models.EquityPoint) models.DrawdownState {
	if len(curve) == 0 {
		return models.DrawdownState{Status: models.DrawdownHealthy}
	}

	peak := curve[0].Equity
	peakIdx := 0
	var maxDD float64

	for i, pt := range curve {
		if pt.Equity > peak {
			peak = pt.Equity
			peakIdx = i
		}
		if peak > 0 {
			if dd := (peak - pt.Equity) / peak * 100; dd > maxDD {
				maxDD = dd
			}
		}
	}

	last := curve[len(curve)-1]
	var currentDD float64
	if peak > 0 {
		currentDD = (peak - last.Equity) / peak * 100
	}

	duration := 0
	if currentDD > 0 {
		duration = util.DaysBetween(curve[peakIdx].Date, last.Date)
	}

	var totalReturn float64
	if first := curve[0].Equity; first > 0 {
		totalReturn = (last.Equity - first) / first * 100
	}
	var recovery float64
	if maxDD > 0 {
		recovery = totalReturn / maxDD
	}

	return models.DrawdownState{
		CurrentDrawdown:  currentDD,
		MaxDrawdown:      maxDD,
		PeakEquity:       peak,
		CurrentEquity:    last.Equity,
		DrawdownDuration: duration,
		RecoveryFactor:   recovery,
		Status:           drawdownStatusFor(currentDD),
	}
}

// drawdownStatusFor buckets the current drawdown percentage into the status
// ladder. Severity is strictly increasing with drawdown.
func drawdownStatusFor(dd float64) models.DrawdownStatus {
	switch {
	case dd >= 20:
		return models.DrawdownCircuitBreaker
	case dd >= 15:
		return models.DrawdownCritical
	case dd >= 10:
		return models.DrawdownWarning
	case dd >= 5:
		return models.DrawdownCaution
	default:
		return models.DrawdownHealthy
	}
}
