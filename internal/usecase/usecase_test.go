package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"RiskDesk/internal/domain/models"
	applogger "RiskDesk/pkg/logger"
)

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func testLogger() *applogger.Logger {
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		panic(err)
	}
	return l
}

func fptr(v float64) *float64 { return &v }

// fakeStore is an in-memory PortfolioStore capturing stored decisions.
type fakeStore struct {
	mu        sync.Mutex
	trades    []models.TradeRecord
	curve     []models.EquityPoint
	positions []models.OpenPosition
	stored    []*models.ActionDecision
	failStore bool
}

func (f *fakeStore) Init(context.Context) error { return nil }

func (f *fakeStore) Trades(_ context.Context, limit int) ([]models.TradeRecord, error) {
	if limit > 0 && limit < len(f.trades) {
		return f.trades[len(f.trades)-limit:], nil
	}
	return f.trades, nil
}

func (f *fakeStore) EquityCurve(_ context.Context, _ int) ([]models.EquityPoint, error) {
	return f.curve, nil
}

func (f *fakeStore) OpenPositions(context.Context) ([]models.OpenPosition, error) {
	return f.positions, nil
}

func (f *fakeStore) StoreDecision(_ context.Context, d *models.ActionDecision) error {
	if f.failStore {
		return errors.New("clickhouse down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, d)
	return nil
}

func (f *fakeStore) Health(context.Context) error { return nil }
func (f *fakeStore) Close() error                 { return nil }

// fakePublisher records published decisions.
type fakePublisher struct {
	mu        sync.Mutex
	published []*models.ActionDecision
	closed    bool
	fail      bool
}

func (f *fakePublisher) Publish(_ context.Context, d *models.ActionDecision) error {
	if f.fail {
		return errors.New("broker unreachable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, d)
	return nil
}

func (f *fakePublisher) PublishBatch(ctx context.Context, ds []*models.ActionDecision) error {
	for _, d := range ds {
		if err := f.Publish(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

// fakeMetrics counts recorder calls by name.
type fakeMetrics struct {
	mu        sync.Mutex
	decisions int
	scores    int
	errors    map[string]int
	statuses  []float64
}

func newFakeMetrics() *fakeMetrics { return &fakeMetrics{errors: map[string]int{}} }

func (f *fakeMetrics) RecordDecision(string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisions++
}

func (f *fakeMetrics) RecordDecisionScore(string, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores++
}

func (f *fakeMetrics) RecordTradingStatus(level float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, level)
}

func (f *fakeMetrics) RecordError(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[kind]++
}

func (f *fakeMetrics) RecordLatency(string, float64) {}

// fullAnalysis returns a FOREX long with all seven dimensions aligned and
// fresh as of testNow.
func fullAnalysis(symbol string, score float64) models.AssetAnalysis {
	dim := func() *models.DimensionInput {
		return &models.DimensionInput{
			Score:      fptr(score),
			Direction:  models.DirectionLong,
			Confidence: models.ConfidenceHigh,
			Timestamp:  testNow,
			Source:     "test",
		}
	}
	a := models.AssetAnalysis{
		Symbol:         symbol,
		DisplaySymbol:  symbol,
		AssetClass:     models.AssetForex,
		Direction:      models.DirectionLong,
		Price:          1.1000,
		DataTimestamps: map[models.Dimension]time.Time{},
	}
	a.Macro = dim()
	a.Meso = dim()
	a.Micro = dim()
	a.LiquidityMap = dim()
	a.CurrencyStrength = dim()
	a.Fundamentals = dim()
	a.Sentiment = dim()
	a.Fundamentals.Direction = models.DirectionNeutral
	for _, d := range models.RealDimensions {
		a.DataTimestamps[d] = testNow
	}
	return a
}
