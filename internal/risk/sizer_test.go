package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskDesk/internal/domain/models"
)

func unconstrainedSizeRequest() SizeRequest {
	return SizeRequest{
		Kelly:       models.KellyResult{Recommended: 0.02},
		Drawdown:    models.DrawdownState{Status: models.DrawdownHealthy},
		Correlation: models.CorrelationAdjustedRisk{AdjustedRisk: 5, AvgCorrelation: 0.1},
		Budget:      models.RiskBudget{AvailableBudget: 5},
		Equity:      100000,
		Entry:       100,
		StopLoss:    99,
	}
}

func TestSizerUnconstrained(t *testing.T) {
	res := NewPositionSizer().Size(unconstrainedSizeRequest())

	assert.InDelta(t, 2.0, res.RiskPercent, 1e-9)
	// 2% of 100k is 2000 of risk over a 1 point stop.
	assert.InDelta(t, 2000, res.Quantity, 1e-9)
	assert.InDelta(t, 200000, res.PositionSize, 1e-9)
	require.Len(t, res.Reasoning, 1)
	assert.Contains(t, res.Reasoning[0], "kelly recommends")
}

func TestSizerDrawdownThrottle(t *testing.T) {
	req := unconstrainedSizeRequest()
	req.Drawdown.Status = models.DrawdownWarning

	res := NewPositionSizer().Size(req)

	assert.InDelta(t, 1.0, res.RiskPercent, 1e-9)
	assert.Len(t, res.Reasoning, 2)
}

func TestSizerCorrelationBinds(t *testing.T) {
	req := unconstrainedSizeRequest()
	req.Correlation.AdjustedRisk = 1.2

	res := NewPositionSizer().Size(req)

	assert.InDelta(t, 1.2, res.RiskPercent, 1e-9)
}

func TestSizerBudgetBinds(t *testing.T) {
	req := unconstrainedSizeRequest()
	req.Budget.AvailableBudget = 0.5

	res := NewPositionSizer().Size(req)

	assert.InDelta(t, 0.5, res.RiskPercent, 1e-9)
}

func TestSizerHardCap(t *testing.T) {
	req := unconstrainedSizeRequest()
	req.Kelly.Recommended = 0.08

	res := NewPositionSizer().Size(req)

	assert.InDelta(t, maxSinglePosition, res.RiskPercent, 1e-9)
}

func TestSizerCircuitBreakerZeroesOut(t *testing.T) {
	req := unconstrainedSizeRequest()
	req.Drawdown.Status = models.DrawdownCircuitBreaker
	req.Budget.AvailableBudget = 0

	res := NewPositionSizer().Size(req)

	assert.Zero(t, res.RiskPercent)
	assert.Zero(t, res.Quantity)
}

func TestSizerZeroStopDistance(t *testing.T) {
	req := unconstrainedSizeRequest()
	req.StopLoss = req.Entry

	res := NewPositionSizer().Size(req)

	assert.Zero(t, res.Quantity)
	assert.Contains(t, res.Reasoning[len(res.Reasoning)-1], "zero stop distance")
}

func TestSizerConstraintsOnlyShrink(t *testing.T) {
	base := NewPositionSizer().Size(unconstrainedSizeRequest())

	for _, status := range []models.DrawdownStatus{
		models.DrawdownCaution, models.DrawdownWarning, models.DrawdownCritical,
	} {
		req := unconstrainedSizeRequest()
		req.Drawdown.Status = status
		res := NewPositionSizer().Size(req)
		assert.LessOrEqual(t, res.RiskPercent, base.RiskPercent, string(status))
	}
}
