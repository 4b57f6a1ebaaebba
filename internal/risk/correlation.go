package risk

import (
	"math"

	"RiskDesk/internal/domain/models"
)

const (
	// correlationPenaltyAbove is the avg-correlation level where the
	// concentration penalty kicks in.
	correlationPenaltyAbove = 0.5
	// correlatedExposureCap limits total risk across highly correlated
	// positions (correlation > 0.6), in percent.
	correlatedExposureCap = 8.0
	// highCorrelation marks a position as part of the correlated cluster.
	highCorrelation = 0.6
	// adjustedRiskFloor is the minimum risk after penalty and benefit.
	adjustedRiskFloor = 0.1
)

// CorrelationRiskAdjuster penalizes risk that stacks onto correlated
// exposure and rewards genuine diversification.
type CorrelationRiskAdjuster struct{}

func NewCorrelationRiskAdjuster() *CorrelationRiskAdjuster { return &CorrelationRiskAdjuster{} }

// Adjust reshapes newRisk (percent of equity) against the open positions,
// where each position carries its correlation to the candidate.
func (c *CorrelationRiskAdjuster) Adjust(newRisk float64, positions []models.OpenPosition) models.CorrelationAdjustedRisk {
	avg := weightedAvgCorrelation(positions)

	var penalty, benefit float64
	if avg > correlationPenaltyAbove {
		penalty = newRisk * avg * 0.5
	}
	if avg < 0 {
		benefit = newRisk * math.Abs(avg) * 0.2
	}

	adjusted := newRisk - penalty + benefit
	if adjusted < adjustedRiskFloor {
		adjusted = adjustedRiskFloor
	}

	var correlated float64
	for _, p := range positions {
		if p.Correlation > highCorrelation {
			correlated += p.Risk
		}
	}
	if correlated+newRisk > correlatedExposureCap {
		headroom := correlatedExposureCap - correlated
		if headroom < 0 {
			headroom = 0
		}
		if adjusted > headroom {
			adjusted = headroom
		}
	}

	var sumSquares float64
	for _, p := range positions {
		sumSquares += p.Risk * p.Risk
	}
	effective := math.Sqrt(sumSquares+adjusted*adjusted*(1+avg)) - math.Sqrt(sumSquares)

	return models.CorrelationAdjustedRisk{
		BaseRisk:           newRisk,
		AvgCorrelation:     avg,
		Penalty:            penalty,
		Benefit:            benefit,
		AdjustedRisk:       adjusted,
		CorrelatedExposure: correlated,
		EffectiveRisk:      effective,
	}
}

// weightedAvgCorrelation weights each position's correlation by its risk
// allocation. An empty book correlates with nothing.
func weightedAvgCorrelation(positions []models.OpenPosition) float64 {
	var riskSum, weighted float64
	for _, p := range positions {
		riskSum += p.Risk
		weighted += p.Risk * p.Correlation
	}
	if riskSum == 0 {
		return 0
	}
	return weighted / riskSum
}
