package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskDesk/internal/domain/models"
)

func TestPlanNilForTierF(t *testing.T) {
	out := NewTradePlanBuilder().Build(fullAnalysis(90), models.TierF, nil)
	assert.Nil(t, out.Plan)
	assert.Empty(t, out.Blockers)
}

func TestPlanLongGeometryFromATRFallback(t *testing.T) {
	a := fullAnalysis(90)
	a.Price = 100

	out := NewTradePlanBuilder().Build(a, models.TierA, nil)
	require.NotNil(t, out.Plan)
	p := out.Plan

	// ATR falls back to 1% of price.
	assert.InDelta(t, 1.0, p.ATR, 1e-9)
	assert.InDelta(t, 99, p.StopLoss, 1e-9)
	assert.InDelta(t, 102, p.Targets.TP1, 1e-9)
	assert.InDelta(t, 103, p.Targets.TP2, 1e-9)
	assert.InDelta(t, 104.5, p.Targets.TP3, 1e-9)
	assert.InDelta(t, 2.0, p.RiskReward, 1e-9)
	assert.True(t, p.StopLoss < p.Entry && p.Entry < p.Targets.TP1)
	assert.Empty(t, out.Blockers)
	assert.Empty(t, out.Warnings)
}

func TestPlanShortMirrored(t *testing.T) {
	a := fullAnalysis(90)
	a.Price = 100
	a.Direction = models.DirectionShort

	out := NewTradePlanBuilder().Build(a, models.TierA, nil)
	require.NotNil(t, out.Plan)
	p := out.Plan

	assert.InDelta(t, 101, p.StopLoss, 1e-9)
	assert.InDelta(t, 98, p.Targets.TP1, 1e-9)
	assert.True(t, p.Targets.TP1 < p.Entry && p.Entry < p.StopLoss)
}

func TestPlanTierCStopMultiplier(t *testing.T) {
	a := fullAnalysis(60)
	a.Price = 100

	out := NewTradePlanBuilder().Build(a, models.TierC, nil)
	require.NotNil(t, out.Plan)
	assert.InDelta(t, 98.5, out.Plan.StopLoss, 1e-9, "tier C widens the stop by 1.5x")
	// rr = 2 / 1.5 = 1.33 < 1.5 minimum
	assert.InDelta(t, 2.0/1.5, out.Plan.RiskReward, 1e-9)
	assert.Len(t, out.Warnings, 1, "thin risk/reward warns but does not block")
}

func TestPlanPositionSizeByTier(t *testing.T) {
	a := fullAnalysis(90)
	cases := []struct {
		tier models.Tier
		want float64
	}{
		{models.TierA, 0.375},
		{models.TierB, 0.28125},
		{models.TierC, 0.1875},
		{models.TierD, 0.09375},
	}
	for _, tc := range cases {
		out := NewTradePlanBuilder().Build(a, tc.tier, nil)
		require.NotNil(t, out.Plan, "tier %s", tc.tier)
		assert.InDelta(t, tc.want, out.Plan.PositionSize.FinalPercent, 1e-9, "tier %s", tc.tier)
	}
}

func TestPlanMicroOverrideWinsAndIncoherenceBlocks(t *testing.T) {
	a := fullAnalysis(90)
	a.Price = 100

	micro := &models.MicroOverride{
		Entry:    fptr(101),
		StopLoss: fptr(99.5),
		ATR:      fptr(2),
	}
	out := NewTradePlanBuilder().Build(a, models.TierA, micro)
	require.NotNil(t, out.Plan)
	assert.Equal(t, 101.0, out.Plan.Entry)
	assert.Equal(t, 99.5, out.Plan.StopLoss)
	assert.Empty(t, out.Blockers)

	// A stop above entry on a long is incoherent: blocker, not an error.
	bad := &models.MicroOverride{StopLoss: fptr(105)}
	out = NewTradePlanBuilder().Build(a, models.TierA, bad)
	require.NotNil(t, out.Plan, "the plan is still returned for the audit trail")
	assert.Len(t, out.Blockers, 1)
}

func TestPlanZeroRiskDistance(t *testing.T) {
	a := fullAnalysis(90)
	a.Price = 100

	out := NewTradePlanBuilder().Build(a, models.TierA, &models.MicroOverride{StopLoss: fptr(100)})
	require.NotNil(t, out.Plan)
	assert.Zero(t, out.Plan.RiskReward, "zero risk distance must not divide")
	assert.NotEmpty(t, out.Blockers, "stop at entry is incoherent geometry")
}
