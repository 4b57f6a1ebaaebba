package risk

import (
	"fmt"
	"math"

	"RiskDesk/internal/domain/models"
)

// SizeRequest is everything the position sizer combines.
type SizeRequest struct {
	Kelly       models.KellyResult
	Drawdown    models.DrawdownState
	Correlation models.CorrelationAdjustedRisk
	Budget      models.RiskBudget
	Equity      float64
	Entry       float64
	StopLoss    float64
}

// PositionSizer combines the Kelly fraction, drawdown throttle, correlation
// adjustment and budget headroom into a final quantity, recording every
// clamp it applies.
type PositionSizer struct{}

func NewPositionSizer() *PositionSizer { return &PositionSizer{} }

// Size computes the final position. Each successive constraint can only
// shrink the risk; the trace explains which ones bound.
func (s *PositionSizer) Size(req SizeRequest) models.PositionSizeResult {
	var reasoning []string

	risk := req.Kelly.Recommended * 100
	reasoning = append(reasoning, fmt.Sprintf("kelly recommends %.2f%% risk", risk))

	ddMult := req.Drawdown.Status.SizeMultiplier()
	risk *= ddMult
	if ddMult < 1 {
		reasoning = append(reasoning, fmt.Sprintf("drawdown status %s scales risk by %.2f to %.2f%%",
			req.Drawdown.Status, ddMult, risk))
	}

	if req.Correlation.AdjustedRisk < risk {
		risk = req.Correlation.AdjustedRisk
		reasoning = append(reasoning, fmt.Sprintf("correlation-adjusted risk caps at %.2f%% (avg correlation %.2f)",
			risk, req.Correlation.AvgCorrelation))
	}

	if req.Budget.AvailableBudget < risk {
		risk = req.Budget.AvailableBudget
		reasoning = append(reasoning, fmt.Sprintf("risk budget leaves %.2f%% available", risk))
	}

	if risk > maxSinglePosition {
		risk = maxSinglePosition
		reasoning = append(reasoning, fmt.Sprintf("hard cap %.1f%% per position binds", maxSinglePosition))
	}
	if risk < 0 {
		risk = 0
		reasoning = append(reasoning, "no risk headroom remains")
	}

	stopDist := math.Abs(req.Entry - req.StopLoss)
	var quantity float64
	if stopDist > 0 && req.Equity > 0 {
		quantity = (req.Equity * risk / 100) / stopDist
	} else {
		reasoning = append(reasoning, "zero stop distance: quantity forced to 0")
	}

	return models.PositionSizeResult{
		RiskPercent:  risk,
		Quantity:     quantity,
		PositionSize: quantity * req.Entry,
		Reasoning:    reasoning,
	}
}
