package risk

import (
	"RiskDesk/internal/domain/models"
)

const (
	// minTradeSample below which Kelly statistics are not trusted.
	minTradeSample = 10
	// maxSinglePosition caps any single position's risk, in percent.
	maxSinglePosition = 3.0
	// fallbackRisk is the recommended fraction when history is insufficient.
	fallbackRisk = 0.005
)

// confidenceScale shrinks the raw Kelly fraction by decision confidence.
var confidenceScale = map[models.Confidence]float64{
	models.ConfidenceHigh:   0.5,
	models.ConfidenceMedium: 0.25,
	models.ConfidenceLow:    0.1,
}

// KellyCalculator derives the optimal risk fraction from trade statistics.
type KellyCalculator struct{}

func NewKellyCalculator() *KellyCalculator { return &KellyCalculator{} }

// FromStats computes the Kelly fractions from a win rate and average win and
// loss expressed in R-multiples. avgLoss of zero is degenerate and yields
// the insufficient-data fallback.
func (k *KellyCalculator) FromStats(winRate, avgWin, avgLoss float64, confidence models.Confidence) models.KellyResult {
	if avgLoss == 0 {
		return k.fallback(0)
	}

	p := clamp(winRate, 0.01, 0.99)
	q := 1 - p
	b := abs(avgWin / avgLoss)

	full := (b*p - q) / b

	quality := models.EdgeStrong
	switch {
	case full <= 0:
		quality = models.EdgeNegative
	case full < 0.05:
		quality = models.EdgeWeak
	case full < 0.15:
		quality = models.EdgeModerate
	}

	scale, ok := confidenceScale[confidence]
	if !ok {
		scale = confidenceScale[models.ConfidenceLow]
	}
	recommended := full * scale
	if recommended < 0 {
		recommended = 0
	}
	maxPos := recommended * 100
	if maxPos > maxSinglePosition {
		maxPos = maxSinglePosition
	}
	recommended = maxPos / 100

	return models.KellyResult{
		FullKelly:    full,
		HalfKelly:    0.5 * full,
		QuarterKelly: 0.25 * full,
		Recommended:  recommended,
		MaxPosition:  maxPos,
		EdgeQuality:  quality,
		WinRate:      p,
		PayoffRatio:  b,
	}
}

// FromTrades derives statistics from closed trade history. Fewer than ten
// trades, or a history with no losing trades to anchor the payoff ratio,
// yields the fixed conservative fallback.
func (k *KellyCalculator) FromTrades(trades []models.TradeRecord, confidence models.Confidence) models.KellyResult {
	if len(trades) < minTradeSample {
		return k.fallback(len(trades))
	}

	var wins, losses int
	var winSum, lossSum float64
	for _, t := range trades {
		r := t.RMultiple()
		if t.PnL > 0 {
			wins++
			winSum += r
		} else if t.PnL < 0 {
			losses++
			lossSum += r
		}
	}
	if wins == 0 || losses == 0 {
		return k.fallback(len(trades))
	}

	winRate := float64(wins) / float64(len(trades))
	avgWin := winSum / float64(wins)
	avgLoss := lossSum / float64(losses)

	res := k.FromStats(winRate, avgWin, avgLoss, confidence)
	res.SampleSize = len(trades)
	return res
}

func (k *KellyCalculator) fallback(sample int) models.KellyResult {
	return models.KellyResult{
		Recommended: fallbackRisk,
		MaxPosition: fallbackRisk * 100,
		EdgeQuality: models.EdgeWeak,
		SampleSize:  sample,
		Fallback:    true,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
