package decision

import (
	"fmt"
	"time"

	"RiskDesk/internal/domain/models"
)

// maxEvidenceAge is the hard staleness floor: any evidence older than this
// caps the tier at C regardless of score.
const maxEvidenceAge = 4 * time.Hour

// TierClassifier maps a unified score to a confidence tier and applies the
// monotonic downgrade overrides. Overrides only ever move a tier toward F.
type TierClassifier struct{}

func NewTierClassifier() *TierClassifier { return &TierClassifier{} }

// Classify returns the initial tier implied by score alone.
func (c *TierClassifier) Classify(score float64) models.Tier {
	switch {
	case score >= 85:
		return models.TierA
	case score >= 70:
		return models.TierB
	case score >= 55:
		return models.TierC
	case score >= 40:
		return models.TierD
	default:
		return models.TierF
	}
}

// OverrideContext is everything the downgrade rules inspect.
type OverrideContext struct {
	Analysis *models.AssetAnalysis
	Regime   *models.RegimeSnapshot
	Now      time.Time
}

// ApplyOverrides folds the downgrade rules over the tier's severity index.
// Each applied rule appends a warning; the returned tier is never better
// than the input tier.
func (c *TierClassifier) ApplyOverrides(tier models.Tier, ctx OverrideContext) (models.Tier, []string) {
	idx := tier.SeverityIndex()
	var warnings []string
	a := ctx.Analysis

	floorAt := func(floor models.Tier, reason string) {
		if f := floor.SeverityIndex(); f > idx {
			idx = f
			warnings = append(warnings, reason)
		}
	}
	downgrade := func(levels int, reason string) {
		if next := idx + levels; next > idx {
			idx = min(next, models.TierF.SeverityIndex())
			warnings = append(warnings, reason)
		}
	}

	// 1. Critical regime caps longs outside bonds.
	if ctx.Regime != nil && ctx.Regime.Regime.Critical() &&
		a.Direction == models.DirectionLong && a.AssetClass != models.AssetBond {
		floorAt(models.TierD, fmt.Sprintf("regime %s: long exposure capped at tier D", ctx.Regime.Regime))
	}

	// 2. FX decisions against currency-strength flow.
	if a.AssetClass == models.AssetForex {
		if in := a.Input(models.DimCurrencyStrength); conflicts(in, a.Direction) {
			downgrade(1, "currency strength opposes decision direction")
		}
	}

	// 3. Any asset against the liquidity map.
	if in := a.Input(models.DimLiquidityMap); conflicts(in, a.Direction) {
		downgrade(1, "liquidity map opposes decision direction")
	}

	// 4. Macro and micro in open disagreement.
	macro, micro := a.Input(models.DimMacro), a.Input(models.DimMicro)
	if macro != nil && micro != nil &&
		macro.Direction != models.DirectionNeutral && micro.Direction != models.DirectionNeutral &&
		macro.Direction == micro.Direction.Opposite() {
		floorAt(models.TierD, "macro and micro evidence point in opposite directions")
	}

	// 5. Stale evidence floor.
	for dim, ts := range a.DataTimestamps {
		if ctx.Now.Sub(ts) > maxEvidenceAge {
			floorAt(models.TierC, fmt.Sprintf("%s evidence older than 4h", dim))
			break
		}
	}

	return models.TierFromSeverity(idx), warnings
}

func conflicts(in *models.DimensionInput, dir models.Direction) bool {
	if in == nil || dir == models.DirectionNeutral {
		return false
	}
	return in.Direction == dir.Opposite() && in.Direction != models.DirectionNeutral
}

// ActionFor derives the executable action implied by a tier, before blockers
// are taken into account.
func ActionFor(tier models.Tier) models.Action {
	switch tier {
	case models.TierA:
		return models.ActionExecuteFull
	case models.TierB:
		return models.ActionExecuteStandard
	case models.TierC:
		return models.ActionExecuteReduced
	case models.TierD:
		return models.ActionWatchOnly
	default:
		return models.ActionSkip
	}
}
