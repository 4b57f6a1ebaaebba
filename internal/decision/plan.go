package decision

import (
	"fmt"
	"math"

	"RiskDesk/internal/domain/models"
)

const (
	// baseRiskPercent is the per-trade risk budget before tier scaling.
	baseRiskPercent = 1.5
	// planRiskCap caps the final per-trade risk fraction.
	planRiskCap = 2.0
	// minRiskReward below which the plan carries a warning.
	minRiskReward = 1.5
	// atrFallbackRatio derives a stop distance when no ATR is supplied.
	atrFallbackRatio = 0.01
)

// tierPositionMultipliers scales the base risk by confidence tier.
var tierPositionMultipliers = map[models.Tier]float64{
	models.TierA: 1.0,
	models.TierB: 0.75,
	models.TierC: 0.5,
	models.TierD: 0.25,
	models.TierF: 0,
}

// target distances in ATR multiples.
var targetMultiples = [3]float64{2, 3, 4.5}

// PlanOutcome carries the plan plus anything the coherence check raised.
type PlanOutcome struct {
	Plan     *models.TradePlan
	Warnings []string
	Blockers []string
}

// TradePlanBuilder derives entry, stop, targets and a position-size skeleton
// from the final tier and volatility.
type TradePlanBuilder struct{}

func NewTradePlanBuilder() *TradePlanBuilder { return &TradePlanBuilder{} }

// Build produces the trade plan for a decision. Tier F yields no plan.
func (b *TradePlanBuilder) Build(a *models.AssetAnalysis, tier models.Tier, micro *models.MicroOverride) PlanOutcome {
	if tier == models.TierF {
		return PlanOutcome{}
	}

	entry := a.Price
	atr := a.Price * atrFallbackRatio
	if micro != nil {
		if micro.Entry != nil {
			entry = *micro.Entry
		}
		if micro.ATR != nil && *micro.ATR > 0 {
			atr = *micro.ATR
		}
	}

	stopMult := 1.0
	if tier == models.TierC {
		stopMult = 1.5
	}

	var stop float64
	var targets models.TargetLevels
	if a.Direction == models.DirectionShort {
		stop = entry + atr*stopMult
		targets = models.TargetLevels{
			TP1: entry - atr*targetMultiples[0],
			TP2: entry - atr*targetMultiples[1],
			TP3: entry - atr*targetMultiples[2],
		}
	} else {
		stop = entry - atr*stopMult
		targets = models.TargetLevels{
			TP1: entry + atr*targetMultiples[0],
			TP2: entry + atr*targetMultiples[1],
			TP3: entry + atr*targetMultiples[2],
		}
	}
	if micro != nil {
		if micro.StopLoss != nil {
			stop = *micro.StopLoss
		}
		if micro.TakeProfit1 != nil {
			targets.TP1 = *micro.TakeProfit1
		}
		if micro.TakeProfit2 != nil {
			targets.TP2 = *micro.TakeProfit2
		}
		if micro.TakeProfit3 != nil {
			targets.TP3 = *micro.TakeProfit3
		}
	}

	riskDist := math.Abs(entry - stop)
	var rr float64
	if riskDist > 0 {
		rr = math.Abs(targets.TP1-entry) / riskDist
	}
	if micro != nil && micro.RiskReward != nil {
		rr = *micro.RiskReward
	}

	tierMult := tierPositionMultipliers[tier]
	final := math.Min(baseRiskPercent*tierMult*0.25, planRiskCap)

	plan := &models.TradePlan{
		Entry:      entry,
		StopLoss:   stop,
		Targets:    targets,
		RiskReward: rr,
		ATR:        atr,
		PositionSize: models.PositionSizePlan{
			BaseRiskPercent: baseRiskPercent,
			TierMultiplier:  tierMult,
			FinalPercent:    final,
		},
	}

	out := PlanOutcome{Plan: plan}
	if !coherent(a.Direction, plan) {
		out.Blockers = append(out.Blockers,
			fmt.Sprintf("incoherent plan geometry for %s: stop %.5f entry %.5f tp1 %.5f",
				a.Direction, plan.StopLoss, plan.Entry, plan.Targets.TP1))
	}
	if rr < minRiskReward {
		out.Warnings = append(out.Warnings,
			fmt.Sprintf("risk/reward %.2f below %.1f", rr, minRiskReward))
	}
	return out
}

// coherent verifies stop < entry < tp1 for longs, mirrored for shorts.
func coherent(dir models.Direction, p *models.TradePlan) bool {
	if dir == models.DirectionShort {
		return p.Targets.TP1 < p.Entry && p.Entry < p.StopLoss
	}
	return p.StopLoss < p.Entry && p.Entry < p.Targets.TP1
}
