package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskDesk/internal/domain/models"
	"RiskDesk/internal/risk"
)

// healthyStore seeds a profitable portfolio: 22 trades with a positive
// edge, a gently rising equity curve and two small open positions.
func healthyStore() *fakeStore {
	store := &fakeStore{}
	day := testNow.AddDate(0, 0, -30)
	for i := 0; i < 22; i++ {
		pnl := 200.0
		if i%5 == 0 || i%7 == 0 {
			pnl = -100.0
		}
		store.trades = append(store.trades, models.TradeRecord{
			Symbol: "EURUSD",
			PnL:    pnl,
			Risk:   100,
			Date:   day.AddDate(0, 0, i),
		})
	}
	equity := 100000.0
	for i := 0; i <= 30; i++ {
		store.curve = append(store.curve, models.EquityPoint{
			Date:   testNow.AddDate(0, 0, i-30),
			Equity: equity,
		})
		equity += 120
	}
	store.positions = []models.OpenPosition{
		{Symbol: "EURUSD", Risk: 1.0, Correlation: 0.3},
		{Symbol: "XAUUSD", Risk: 1.0, Correlation: 0.1},
	}
	return store
}

func newRiskService(store *fakeStore, m *fakeMetrics) *RiskService {
	return NewRiskService(risk.NewReportGenerator(), store, m, testLogger())
}

func TestReportFromHealthyStore(t *testing.T) {
	m := newFakeMetrics()
	svc := newRiskService(healthyStore(), m)

	report, err := svc.Report(context.Background(), &models.RiskReportRequest{Lookback: 250}, testNow)
	require.NoError(t, err)

	assert.Equal(t, models.TradingNormal, report.TradingStatus)
	assert.Equal(t, models.DrawdownHealthy, report.Drawdown.Status)
	assert.Equal(t, 22, report.Portfolio.TradeCount)
	require.NotEmpty(t, m.statuses)
	assert.Equal(t, 0.0, m.statuses[len(m.statuses)-1])
}

func TestReportVixSpikeReduces(t *testing.T) {
	m := newFakeMetrics()
	svc := newRiskService(healthyStore(), m)

	vix := 40.0
	report, err := svc.Report(context.Background(), &models.RiskReportRequest{Lookback: 250, VIX: &vix}, testNow)
	require.NoError(t, err)

	assert.Equal(t, models.TradingReduced, report.TradingStatus)
	assert.Equal(t, 1.0, m.statuses[len(m.statuses)-1])
}

func TestReportDailyLossHalts(t *testing.T) {
	store := healthyStore()
	// Overnight 4% drop trips the daily loss breaker.
	last := len(store.curve) - 1
	store.curve[last].Equity = store.curve[last-1].Equity * 0.96

	m := newFakeMetrics()
	svc := newRiskService(store, m)

	report, err := svc.Report(context.Background(), &models.RiskReportRequest{Lookback: 250}, testNow)
	require.NoError(t, err)

	assert.Equal(t, models.TradingHalted, report.TradingStatus)
	assert.Equal(t, 2.0, m.statuses[len(m.statuses)-1])
}

func TestPositionSizeHealthyPortfolio(t *testing.T) {
	svc := newRiskService(healthyStore(), newFakeMetrics())

	res, err := svc.PositionSize(context.Background(), &models.PositionSizeRequest{
		Symbol:   "EURUSD",
		Entry:    1.1000,
		StopLoss: 1.0950,
		Lookback: 250,
	}, testNow)
	require.NoError(t, err)

	assert.Greater(t, res.RiskPercent, 0.0)
	assert.LessOrEqual(t, res.RiskPercent, 3.0)
	assert.Greater(t, res.Quantity, 0.0)
	assert.NotEmpty(t, res.Reasoning)
}

func TestPnlOverDays(t *testing.T) {
	curve := []models.EquityPoint{
		{Date: testNow.AddDate(0, 0, -7), Equity: 100000},
		{Date: testNow.AddDate(0, 0, -1), Equity: 102000},
		{Date: testNow, Equity: 101000},
	}

	assert.InDelta(t, -0.980392, pnlOverDays(curve, 1), 1e-6)
	assert.InDelta(t, 1.0, pnlOverDays(curve, 7), 1e-9)
	assert.Zero(t, pnlOverDays(nil, 1))
	assert.Zero(t, pnlOverDays(curve[:1], 1))
}

func TestTrailingLosses(t *testing.T) {
	at := func(i int) time.Time { return testNow.AddDate(0, 0, -i) }
	trades := []models.TradeRecord{
		{PnL: 200, Date: at(4)},
		{PnL: -100, Date: at(3)},
		{PnL: 150, Date: at(2)},
		{PnL: -100, Date: at(1)},
		{PnL: -50, Date: at(0)},
	}

	assert.Equal(t, 2, trailingLosses(trades))
	assert.Equal(t, 0, trailingLosses(trades[:3]))
	assert.Equal(t, 0, trailingLosses(nil))
}
