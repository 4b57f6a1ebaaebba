package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskDesk/internal/decision"
	"RiskDesk/internal/domain/models"
)

func newDecisionService(store *fakeStore, pub *fakePublisher, m *fakeMetrics) *DecisionService {
	return NewDecisionService(decision.NewPipeline(), store, pub, m, nil, testLogger())
}

func TestEvaluateFansOutDecisions(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	m := newFakeMetrics()
	svc := newDecisionService(store, pub, m)

	req := &models.DecisionRequest{
		Assets: []models.AssetAnalysis{
			fullAnalysis("EURUSD", 75),
			fullAnalysis("GBPUSD", 40),
		},
	}

	decisions, err := svc.Evaluate(context.Background(), req, testNow)
	require.NoError(t, err)
	require.Len(t, decisions, 2)

	// Ranked best first.
	assert.Equal(t, "EURUSD", decisions[0].Symbol)
	assert.GreaterOrEqual(t, decisions[0].Score.Score, decisions[1].Score.Score)

	assert.Len(t, store.stored, 2)
	assert.Len(t, pub.published, 2)
	assert.Equal(t, 2, m.decisions)
	assert.Equal(t, 2, m.scores)
}

func TestEvaluateAppliesMicroOverride(t *testing.T) {
	svc := newDecisionService(&fakeStore{}, &fakePublisher{}, newFakeMetrics())

	req := &models.DecisionRequest{
		Assets: []models.AssetAnalysis{fullAnalysis("EURUSD", 80)},
		Micro: map[string]models.MicroOverride{
			"EURUSD": {
				Entry:    fptr(1.1000),
				StopLoss: fptr(1.0950),
			},
		},
	}

	decisions, err := svc.Evaluate(context.Background(), req, testNow)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	require.NotNil(t, decisions[0].TradePlan)
	assert.InDelta(t, 1.1000, decisions[0].TradePlan.Entry, 1e-9)
	assert.InDelta(t, 1.0950, decisions[0].TradePlan.StopLoss, 1e-9)
}

func TestEvaluateSurvivesSideEffectFailures(t *testing.T) {
	store := &fakeStore{failStore: true}
	pub := &fakePublisher{fail: true}
	m := newFakeMetrics()
	svc := newDecisionService(store, pub, m)

	req := &models.DecisionRequest{
		Assets: []models.AssetAnalysis{fullAnalysis("EURUSD", 75)},
	}

	decisions, err := svc.Evaluate(context.Background(), req, testNow)
	require.NoError(t, err)
	assert.Len(t, decisions, 1)
	assert.Equal(t, 1, m.errors["decision_store"])
	assert.Equal(t, 1, m.errors["decision_publish"])
}

func TestEvaluateEmptyRequest(t *testing.T) {
	svc := newDecisionService(&fakeStore{}, &fakePublisher{}, newFakeMetrics())

	decisions, err := svc.Evaluate(context.Background(), &models.DecisionRequest{}, testNow)
	require.NoError(t, err)
	assert.Empty(t, decisions)
}

func TestCloseReleasesPublisher(t *testing.T) {
	pub := &fakePublisher{}
	svc := newDecisionService(&fakeStore{}, pub, newFakeMetrics())

	svc.Close()
	assert.True(t, pub.closed)
}
