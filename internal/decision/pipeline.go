package decision

import (
	"fmt"
	"sort"
	"time"

	"RiskDesk/internal/domain/models"
)

// Input is one asset's evaluation request. Now is injected by the caller so
// the pipeline stays a pure function of its inputs.
type Input struct {
	Analysis *models.AssetAnalysis
	Regime   *models.RegimeSnapshot
	Micro    *models.MicroOverride
	Now      time.Time
}

// Pipeline runs coverage, scoring, tier classification, planning and
// evidence explanation in strict order for a single asset. It holds no
// mutable state; the same input always yields the same decision.
type Pipeline struct {
	coverage   *CoverageEvaluator
	scorer     *UnifiedScorer
	classifier *TierClassifier
	planner    *TradePlanBuilder
	explainer  *EvidenceExplainer
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		coverage:   NewCoverageEvaluator(),
		scorer:     NewUnifiedScorer(),
		classifier: NewTierClassifier(),
		planner:    NewTradePlanBuilder(),
		explainer:  NewEvidenceExplainer(),
	}
}

// Evaluate produces the action decision for one asset. The decision is
// always complete: blockers force SKIP but never abort the pipeline.
func (p *Pipeline) Evaluate(in Input) models.ActionDecision {
	a := in.Analysis
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	var path, warnings, blockers []string

	cov := p.coverage.Evaluate(a, now)
	path = append(path, fmt.Sprintf("coverage: %s (%d/%d available, cap %.0f)",
		cov.CoverageTier, cov.AvailableCount, coverageSlots, cov.MaxConfidencePossible))

	score := p.scorer.Score(a, cov, now)
	path = append(path, fmt.Sprintf("unified_score: %.1f (alignment %.2f, freshness %.2f)",
		score.Score, score.AlignmentFactor, score.FreshnessFactor))

	tier := p.classifier.Classify(score.Score)
	path = append(path, fmt.Sprintf("initial_tier: %s", tier))

	tier, overrideWarnings := p.classifier.ApplyOverrides(tier, OverrideContext{
		Analysis: a,
		Regime:   in.Regime,
		Now:      now,
	})
	warnings = append(warnings, overrideWarnings...)
	for _, w := range overrideWarnings {
		path = append(path, fmt.Sprintf("override: %s", w))
	}
	path = append(path, fmt.Sprintf("final_tier: %s", tier))

	evidence := p.explainer.Explain(a)

	outcome := p.planner.Build(a, tier, in.Micro)
	warnings = append(warnings, outcome.Warnings...)
	blockers = append(blockers, outcome.Blockers...)
	if outcome.Plan != nil {
		path = append(path, fmt.Sprintf("trade_plan: entry %.5f stop %.5f rr %.2f",
			outcome.Plan.Entry, outcome.Plan.StopLoss, outcome.Plan.RiskReward))
	} else {
		path = append(path, "trade_plan: none (tier F)")
	}

	action := ActionFor(tier)
	if len(blockers) > 0 {
		action = models.ActionSkip
	}
	path = append(path, fmt.Sprintf("action: %s", action))

	return models.ActionDecision{
		Symbol:        a.Symbol,
		DisplaySymbol: a.DisplaySymbol,
		AssetClass:    a.AssetClass,
		Direction:     a.Direction,
		Tier:          tier,
		Action:        action,
		Score:         score,
		Coverage:      cov,
		TradePlan:     outcome.Plan,
		Evidence:      evidence,
		Warnings:      warnings,
		Blockers:      blockers,
		DecisionPath:  path,
		EvaluatedAt:   now,
	}
}

// EvaluateAll evaluates every input and ranks the decisions: best tier
// first, then unified score, then plan risk/reward.
func (p *Pipeline) EvaluateAll(inputs []Input) []models.ActionDecision {
	decisions := make([]models.ActionDecision, 0, len(inputs))
	for _, in := range inputs {
		decisions = append(decisions, p.Evaluate(in))
	}
	Rank(decisions)
	return decisions
}

// Rank orders decisions in place by (tier severity asc, score desc,
// risk/reward desc).
func Rank(decisions []models.ActionDecision) {
	sort.SliceStable(decisions, func(i, j int) bool {
		di, dj := decisions[i], decisions[j]
		if si, sj := di.Tier.SeverityIndex(), dj.Tier.SeverityIndex(); si != sj {
			return si < sj
		}
		if di.Score.Score != dj.Score.Score {
			return di.Score.Score > dj.Score.Score
		}
		return planRR(di.TradePlan) > planRR(dj.TradePlan)
	})
}

func planRR(p *models.TradePlan) float64 {
	if p == nil {
		return 0
	}
	return p.RiskReward
}
