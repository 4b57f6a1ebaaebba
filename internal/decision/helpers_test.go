package decision

import (
	"time"

	"RiskDesk/internal/domain/models"
)

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func fptr(v float64) *float64 { return &v }

// dim builds a fresh dimension input pointing dir with the given score.
func dim(score float64, dir models.Direction, ts time.Time) *models.DimensionInput {
	return &models.DimensionInput{
		Score:      fptr(score),
		Direction:  dir,
		Confidence: models.ConfidenceHigh,
		Timestamp:  ts,
		Source:     "test",
	}
}

// fullAnalysis returns a FOREX long with all seven dimensions present,
// aligned and fresh as of testNow.
func fullAnalysis(score float64) *models.AssetAnalysis {
	a := &models.AssetAnalysis{
		Symbol:        "EURUSD",
		DisplaySymbol: "EUR/USD",
		AssetClass:    models.AssetForex,
		Direction:     models.DirectionLong,
		Price:         1.1000,
		DataTimestamps: map[models.Dimension]time.Time{},
	}
	a.Macro = dim(score, models.DirectionLong, testNow)
	a.Meso = dim(score, models.DirectionLong, testNow)
	a.Micro = dim(score, models.DirectionLong, testNow)
	a.LiquidityMap = dim(score, models.DirectionLong, testNow)
	a.CurrencyStrength = dim(score, models.DirectionLong, testNow)
	a.Fundamentals = dim(score, models.DirectionNeutral, testNow)
	a.Sentiment = dim(score, models.DirectionLong, testNow)
	for _, d := range models.RealDimensions {
		a.DataTimestamps[d] = testNow
	}
	return a
}
