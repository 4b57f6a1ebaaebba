package models

import "time"

// FreshnessQuality grades how stale one evidence dimension is.
type FreshnessQuality string

const (
	FreshnessFresh       FreshnessQuality = "FRESH"
	FreshnessRecent      FreshnessQuality = "RECENT"
	FreshnessStale       FreshnessQuality = "STALE"
	FreshnessUnavailable FreshnessQuality = "UNAVAILABLE"
)

// CoverageTier classifies overall evidence completeness.
type CoverageTier string

const (
	CoverageFull    CoverageTier = "FULL"
	CoverageHigh    CoverageTier = "HIGH"
	CoverageMedium  CoverageTier = "MEDIUM"
	CoverageLow     CoverageTier = "LOW"
	CoverageMinimal CoverageTier = "MINIMAL"
)

// DimensionCoverage is the derived freshness record for one dimension.
type DimensionCoverage struct {
	Available  bool             `json:"available"`
	Quality    FreshnessQuality `json:"quality"`
	LastUpdate time.Time        `json:"lastUpdate,omitzero"`
	Score      float64          `json:"score"`
}

// DataCoverage aggregates per-dimension freshness into a confidence ceiling.
type DataCoverage struct {
	Dimensions            map[Dimension]DimensionCoverage `json:"dimensions"`
	AvailableCount        int                             `json:"availableCount"`
	TotalCoverage         float64                         `json:"totalCoverage"`
	CoverageTier          CoverageTier                    `json:"coverageTier"`
	MaxConfidencePossible float64                         `json:"maxConfidencePossible"`
}

// ScoreComponent is one dimension's contribution to the unified score.
type ScoreComponent struct {
	Dimension Dimension `json:"dimension"`
	Score     float64   `json:"score"`
	Weight    float64   `json:"weight"`
	Weighted  float64   `json:"weighted"`
}

// UnifiedScore is the composite confidence score for one asset, capped by
// coverage. Ephemeral; recomputed every evaluation.
type UnifiedScore struct {
	Score           float64               `json:"score"`
	CoverageTier    CoverageTier          `json:"coverageTier"`
	ConfidenceCap   float64               `json:"confidenceCap"`
	Breakdown       []ScoreComponent      `json:"breakdown"`
	Weights         map[Dimension]float64 `json:"weights"`
	AlignmentFactor float64               `json:"alignmentFactor"`
	FreshnessFactor float64               `json:"freshnessFactor"`
	TopDrivers      []string              `json:"topDrivers,omitempty"`
}

// Tier is the confidence tier assigned to a decision.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierF Tier = "F"
)

// tierOrder indexes tiers by increasing severity (A best, F worst).
var tierOrder = []Tier{TierA, TierB, TierC, TierD, TierF}

// SeverityIndex returns the tier's position on the A..F severity scale.
func (t Tier) SeverityIndex() int {
	for i, v := range tierOrder {
		if v == t {
			return i
		}
	}
	return len(tierOrder) - 1
}

// TierFromSeverity maps a severity index back to a tier, clamping to F.
func TierFromSeverity(idx int) Tier {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(tierOrder) {
		idx = len(tierOrder) - 1
	}
	return tierOrder[idx]
}

// Action is the executable instruction derived from the final tier.
type Action string

const (
	ActionExecuteFull     Action = "EXECUTE_FULL"
	ActionExecuteStandard Action = "EXECUTE_STANDARD"
	ActionExecuteReduced  Action = "EXECUTE_REDUCED"
	ActionWatchOnly       Action = "WATCH_ONLY"
	ActionSkip            Action = "SKIP"
)

// TargetLevels holds the three profit targets of a trade plan.
type TargetLevels struct {
	TP1 float64 `json:"tp1"`
	TP2 float64 `json:"tp2"`
	TP3 float64 `json:"tp3"`
}

// PositionSizePlan breaks down the per-trade risk fraction of a plan.
type PositionSizePlan struct {
	BaseRiskPercent float64 `json:"baseRiskPercent"`
	TierMultiplier  float64 `json:"tierMultiplier"`
	FinalPercent    float64 `json:"finalPercent"`
}

// TradePlan is the executable geometry of a decision. Nil for tier F.
type TradePlan struct {
	Entry        float64          `json:"entry"`
	StopLoss     float64          `json:"stopLoss"`
	Targets      TargetLevels     `json:"targets"`
	RiskReward   float64          `json:"riskReward"`
	ATR          float64          `json:"atr"`
	PositionSize PositionSizePlan `json:"positionSize"`
}

// EvidenceStance classifies a dimension's relation to the decision direction.
type EvidenceStance string

const (
	StanceSupporting EvidenceStance = "SUPPORTING"
	StanceOpposing   EvidenceStance = "OPPOSING"
	StanceMissing    EvidenceStance = "MISSING"
)

// EvidenceItem is one audit-trail entry explaining a dimension's stance.
type EvidenceItem struct {
	Dimension Dimension      `json:"dimension"`
	Stance    EvidenceStance `json:"stance"`
	Score     *float64       `json:"score,omitempty"`
	Direction Direction      `json:"direction,omitempty"`
	Note      string         `json:"note,omitempty"`
}

// ActionDecision is the ranked output record for one asset.
//
// Invariants: TradePlan == nil exactly when Tier == F, and Action == SKIP
// whenever Blockers is non-empty regardless of tier.
type ActionDecision struct {
	Symbol        string     `json:"symbol"`
	DisplaySymbol string     `json:"displaySymbol"`
	AssetClass    AssetClass `json:"assetClass"`
	Direction     Direction  `json:"direction"`

	Tier      Tier         `json:"tier"`
	Action    Action       `json:"action"`
	Score     UnifiedScore `json:"score"`
	Coverage  DataCoverage `json:"coverage"`
	TradePlan *TradePlan   `json:"tradePlan"`

	Evidence     []EvidenceItem `json:"evidence"`
	Warnings     []string       `json:"warnings"`
	Blockers     []string       `json:"blockers"`
	DecisionPath []string       `json:"decisionPath"`

	EvaluatedAt time.Time `json:"evaluatedAt"`
}
