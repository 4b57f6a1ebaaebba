package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskDesk/internal/domain/models"
)

func TestPipelineReferenceScenario(t *testing.T) {
	d := NewPipeline().Evaluate(Input{Analysis: fullAnalysis(90), Now: testNow})

	assert.Equal(t, models.TierA, d.Tier)
	assert.Equal(t, models.ActionExecuteFull, d.Action)
	assert.Equal(t, 100.0, d.Score.Score)
	require.NotNil(t, d.TradePlan)
	assert.Empty(t, d.Blockers)
	assert.NotEmpty(t, d.DecisionPath)
	assert.Len(t, d.Evidence, 7)
}

func TestPipelinePlanNilIffTierF(t *testing.T) {
	p := NewPipeline()

	low := fullAnalysis(20)
	d := p.Evaluate(Input{Analysis: low, Now: testNow})
	assert.Equal(t, models.TierF, d.Tier)
	assert.Nil(t, d.TradePlan)
	assert.Equal(t, models.ActionSkip, d.Action)

	high := p.Evaluate(Input{Analysis: fullAnalysis(90), Now: testNow})
	assert.NotEqual(t, models.TierF, high.Tier)
	assert.NotNil(t, high.TradePlan)
}

func TestPipelineBlockerForcesSkip(t *testing.T) {
	d := NewPipeline().Evaluate(Input{
		Analysis: fullAnalysis(90),
		Micro:    &models.MicroOverride{StopLoss: fptr(200)}, // incoherent for a long
		Now:      testNow,
	})

	assert.Equal(t, models.TierA, d.Tier, "the blocker does not change the tier")
	assert.Equal(t, models.ActionSkip, d.Action, "blockers override the tier-implied action")
	assert.NotEmpty(t, d.Blockers)
	assert.NotNil(t, d.TradePlan, "the decision stays complete for the audit trail")
}

func TestPipelineMissingEvidenceLowersNeverThrows(t *testing.T) {
	a := &models.AssetAnalysis{
		Symbol:     "XAUUSD",
		AssetClass: models.AssetCommodity,
		Direction:  models.DirectionLong,
		Price:      2400,
		Micro:      dim(75, models.DirectionLong, testNow),
	}

	d := NewPipeline().Evaluate(Input{Analysis: a, Now: testNow})

	assert.Equal(t, models.CoverageMinimal, d.Coverage.CoverageTier)
	assert.LessOrEqual(t, d.Score.Score, 40.0)
	missing := 0
	for _, ev := range d.Evidence {
		if ev.Stance == models.StanceMissing {
			missing++
		}
	}
	assert.Equal(t, 6, missing)
}

func TestPipelineRanking(t *testing.T) {
	strong := fullAnalysis(90)
	strong.Symbol = "EURUSD"

	weaker := fullAnalysis(60)
	weaker.Symbol = "GBPUSD"

	worst := fullAnalysis(10)
	worst.Symbol = "USDJPY"

	got := NewPipeline().EvaluateAll([]Input{
		{Analysis: worst, Now: testNow},
		{Analysis: strong, Now: testNow},
		{Analysis: weaker, Now: testNow},
	})

	require.Len(t, got, 3)
	assert.Equal(t, "EURUSD", got[0].Symbol)
	assert.Equal(t, "GBPUSD", got[1].Symbol)
	assert.Equal(t, "USDJPY", got[2].Symbol)
}

func TestPipelineRankingBreaksTiesByScore(t *testing.T) {
	a := fullAnalysis(95)
	a.Symbol = "A"
	b := fullAnalysis(88)
	b.Symbol = "B"

	// Cap both at tier A; scores differ below the cap via coverage.
	b.Sentiment = nil

	got := NewPipeline().EvaluateAll([]Input{
		{Analysis: b, Now: testNow},
		{Analysis: a, Now: testNow},
	})
	require.Len(t, got, 2)
	if got[0].Tier == got[1].Tier {
		assert.GreaterOrEqual(t, got[0].Score.Score, got[1].Score.Score)
	}
}
