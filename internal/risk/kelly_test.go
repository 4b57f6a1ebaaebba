package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"RiskDesk/internal/domain/models"
)

func TestKellyReferenceNumbers(t *testing.T) {
	k := NewKellyCalculator()

	// 60% win rate at 2R wins vs 1R losses: full Kelly 0.4, a strong edge.
	res := k.FromStats(0.6, 2, 1, models.ConfidenceMedium)

	assert.InDelta(t, 0.4, res.FullKelly, 1e-9)
	assert.InDelta(t, 0.2, res.HalfKelly, 1e-9)
	assert.InDelta(t, 0.1, res.QuarterKelly, 1e-9)
	assert.Equal(t, models.EdgeStrong, res.EdgeQuality)
	// 0.4 x 0.25 = 0.10 but the 3% single-position cap binds.
	assert.InDelta(t, 3.0, res.MaxPosition, 1e-9)
	assert.InDelta(t, 0.03, res.Recommended, 1e-9)
}

func TestKellyEdgeQualityBands(t *testing.T) {
	k := NewKellyCalculator()
	cases := []struct {
		winRate, avgWin, avgLoss float64
		want                     models.EdgeQuality
	}{
		{0.3, 1, 1, models.EdgeNegative},  // full = -0.4
		{0.52, 1, 1, models.EdgeWeak},     // full = 0.04
		{0.55, 1, 1, models.EdgeModerate}, // full = 0.10
		{0.6, 2, 1, models.EdgeStrong},
	}
	for _, tc := range cases {
		res := k.FromStats(tc.winRate, tc.avgWin, tc.avgLoss, models.ConfidenceHigh)
		assert.Equal(t, tc.want, res.EdgeQuality, "winRate %v", tc.winRate)
	}
}

func TestKellyNegativeEdgeRecommendsZero(t *testing.T) {
	res := NewKellyCalculator().FromStats(0.3, 1, 1, models.ConfidenceHigh)
	assert.Zero(t, res.Recommended)
	assert.Zero(t, res.MaxPosition)
}

func TestKellyWinRateClamped(t *testing.T) {
	k := NewKellyCalculator()
	assert.InDelta(t, 0.99, k.FromStats(1.5, 2, 1, models.ConfidenceLow).WinRate, 1e-9)
	assert.InDelta(t, 0.01, k.FromStats(-1, 2, 1, models.ConfidenceLow).WinRate, 1e-9)
}

func TestKellyZeroLossIsDegenerate(t *testing.T) {
	res := NewKellyCalculator().FromStats(0.6, 2, 0, models.ConfidenceHigh)
	assert.True(t, res.Fallback)
	assert.InDelta(t, 0.005, res.Recommended, 1e-9)
}

func makeTrades(wins, losses int) []models.TradeRecord {
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	trades := make([]models.TradeRecord, 0, wins+losses)
	for i := 0; i < wins; i++ {
		trades = append(trades, models.TradeRecord{PnL: 200, Risk: 100, Date: date})
	}
	for i := 0; i < losses; i++ {
		trades = append(trades, models.TradeRecord{PnL: -100, Risk: 100, Date: date})
	}
	return trades
}

func TestKellyInsufficientHistoryFallback(t *testing.T) {
	res := NewKellyCalculator().FromTrades(makeTrades(5, 4), models.ConfidenceHigh)

	assert.True(t, res.Fallback)
	assert.InDelta(t, 0.005, res.Recommended, 1e-9)
	assert.InDelta(t, 0.5, res.MaxPosition, 1e-9)
	assert.Equal(t, models.EdgeWeak, res.EdgeQuality)
}

func TestKellyFromTrades(t *testing.T) {
	// 12 wins at +2R, 8 losses at -1R: winRate 0.6, b=2 -> full Kelly 0.4.
	res := NewKellyCalculator().FromTrades(makeTrades(12, 8), models.ConfidenceMedium)

	assert.False(t, res.Fallback)
	assert.InDelta(t, 0.4, res.FullKelly, 1e-9)
	assert.Equal(t, 20, res.SampleSize)
	assert.InDelta(t, 0.03, res.Recommended, 1e-9)
}

func TestKellyAllWinnersFallsBack(t *testing.T) {
	res := NewKellyCalculator().FromTrades(makeTrades(15, 0), models.ConfidenceHigh)
	assert.True(t, res.Fallback, "no losses means no payoff ratio to anchor on")
}
