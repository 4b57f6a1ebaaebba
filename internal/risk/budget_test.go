package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"RiskDesk/internal/domain/models"
)

func positionsWithRisk(risks ...float64) []models.OpenPosition {
	positions := make([]models.OpenPosition, len(risks))
	for i, r := range risks {
		positions[i] = models.OpenPosition{Risk: r}
	}
	return positions
}

func TestBudgetReferenceNumbers(t *testing.T) {
	tracker := NewRiskBudgetTracker()
	// 4.5 used against an effective budget of 5 (6 total minus 1 reserve).
	budget := tracker.Assess(positionsWithRisk(2.0, 1.5, 1.0))

	assert.InDelta(t, 5.0, budget.EffectiveBudget, 1e-9)
	assert.InDelta(t, 4.5, budget.UsedBudget, 1e-9)
	assert.InDelta(t, 0.9, budget.Utilization, 1e-9)
	assert.InDelta(t, 0.5, budget.AvailableBudget, 1e-9)
	assert.Equal(t, models.BudgetStretched, budget.Status)
}

func TestBudgetStatusBands(t *testing.T) {
	cases := []struct {
		utilization float64
		want        models.BudgetStatus
	}{
		{0, models.BudgetUnderutilized},
		{0.29, models.BudgetUnderutilized},
		{0.3, models.BudgetOptimal},
		{0.7, models.BudgetOptimal},
		{0.71, models.BudgetStretched},
		{0.99, models.BudgetStretched},
		{1, models.BudgetMaxed},
		{1.2, models.BudgetMaxed},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, budgetStatusFor(tc.utilization), "utilization %v", tc.utilization)
	}
}

func TestBudgetOverdeployed(t *testing.T) {
	budget := NewRiskBudgetTracker().Assess(positionsWithRisk(3, 3))

	assert.Equal(t, models.BudgetMaxed, budget.Status)
	assert.Zero(t, budget.AvailableBudget, "overdeployment never reports negative headroom")
}

func TestBudgetEmptyBook(t *testing.T) {
	budget := NewRiskBudgetTracker().Assess(nil)

	assert.Zero(t, budget.UsedBudget)
	assert.InDelta(t, 5.0, budget.AvailableBudget, 1e-9)
	assert.Equal(t, models.BudgetUnderutilized, budget.Status)
}

func TestBudgetDegenerateReserve(t *testing.T) {
	budget := NewRiskBudgetTrackerWith(1, 1).Assess(positionsWithRisk(0.5))

	assert.Equal(t, models.BudgetMaxed, budget.Status)
	assert.Zero(t, budget.AvailableBudget)
}
