package risk

import (
	"RiskDesk/internal/domain/models"
)

const (
	// defaultTotalBudget is the portfolio-wide risk budget, percent of equity.
	defaultTotalBudget = 6.0
	// defaultReserveBuffer is held back from the deployable budget.
	defaultReserveBuffer = 1.0
)

// RiskBudgetTracker tracks total, used and available portfolio risk.
type RiskBudgetTracker struct {
	totalBudget   float64
	reserveBuffer float64
}

func NewRiskBudgetTracker() *RiskBudgetTracker {
	return &RiskBudgetTracker{totalBudget: defaultTotalBudget, reserveBuffer: defaultReserveBuffer}
}

// NewRiskBudgetTrackerWith overrides the budget parameters, for configured
// deployments.
func NewRiskBudgetTrackerWith(total, reserve float64) *RiskBudgetTracker {
	return &RiskBudgetTracker{totalBudget: total, reserveBuffer: reserve}
}

// Assess sums deployed risk across open positions against the effective
// budget. A non-positive effective budget reads as fully maxed.
func (t *RiskBudgetTracker) Assess(positions []models.OpenPosition) models.RiskBudget {
	var used float64
	for _, p := range positions {
		used += p.Risk
	}

	effective := t.totalBudget - t.reserveBuffer
	budget := models.RiskBudget{
		TotalBudget:     t.totalBudget,
		ReserveBuffer:   t.reserveBuffer,
		EffectiveBudget: effective,
		UsedBudget:      used,
	}

	if effective <= 0 {
		budget.Status = models.BudgetMaxed
		return budget
	}

	budget.Utilization = used / effective
	if avail := effective - used; avail > 0 {
		budget.AvailableBudget = avail
	}
	budget.Status = budgetStatusFor(budget.Utilization)
	return budget
}

func budgetStatusFor(utilization float64) models.BudgetStatus {
	switch {
	case utilization >= 1:
		return models.BudgetMaxed
	case utilization > 0.7:
		return models.BudgetStretched
	case utilization >= 0.3:
		return models.BudgetOptimal
	default:
		return models.BudgetUnderutilized
	}
}
