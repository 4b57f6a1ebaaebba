package decision

import (
	"fmt"
	"sort"
	"time"

	"RiskDesk/internal/domain/models"
)

// UnifiedScorer folds the per-dimension evidence into one composite score,
// adjusted for directional alignment and data freshness and capped by the
// coverage ceiling.
type UnifiedScorer struct{}

func NewUnifiedScorer() *UnifiedScorer { return &UnifiedScorer{} }

// Score computes the unified score for one asset as of now.
func (s *UnifiedScorer) Score(a *models.AssetAnalysis, cov models.DataCoverage, now time.Time) models.UnifiedScore {
	weights := WeightsFor(a.AssetClass)

	var weightedSum, weightSum float64
	breakdown := make([]models.ScoreComponent, 0, len(models.RealDimensions))
	outWeights := make(map[models.Dimension]float64, len(models.RealDimensions))

	for _, dim := range models.RealDimensions {
		dw := weights[dim]
		if !dw.Applicable {
			continue
		}
		outWeights[dim] = dw.Weight
		in := a.Input(dim)
		if in == nil || in.Score == nil {
			continue
		}
		weighted := *in.Score * dw.Weight
		weightedSum += weighted
		weightSum += dw.Weight
		breakdown = append(breakdown, models.ScoreComponent{
			Dimension: dim,
			Score:     *in.Score,
			Weight:    dw.Weight,
			Weighted:  weighted,
		})
	}

	var base float64
	if weightSum > 0 {
		base = weightedSum / weightSum
	}

	alignment := s.alignmentFactor(a)
	freshness := s.freshnessFactor(a, now)

	raw := base * alignment * freshness
	score := raw
	if score > cov.MaxConfidencePossible {
		score = cov.MaxConfidencePossible
	}
	if score < 0 {
		score = 0
	}

	return models.UnifiedScore{
		Score:           score,
		CoverageTier:    cov.CoverageTier,
		ConfidenceCap:   cov.MaxConfidencePossible,
		Breakdown:       breakdown,
		Weights:         outWeights,
		AlignmentFactor: alignment,
		FreshnessFactor: freshness,
		TopDrivers:      topDrivers(breakdown, 3),
	}
}

// alignmentFactor rewards directional agreement across the six directional
// dimensions and penalizes open conflict.
func (s *UnifiedScorer) alignmentFactor(a *models.AssetAnalysis) float64 {
	var aligned, conflicting, total int

	for _, dim := range models.DirectionalDimensions {
		in := a.Input(dim)
		if in == nil || in.Score == nil {
			continue
		}
		total++
		switch in.Direction {
		case a.Direction:
			aligned++
		case a.Direction.Opposite():
			if in.Direction != models.DirectionNeutral {
				conflicting++
			}
		}
	}

	ratio := 1.0
	if total > 0 {
		ratio = float64(aligned-conflicting) / float64(total)
	}

	switch {
	case ratio > 0.6:
		return 1.2
	case ratio > 0.3:
		return 1.1
	case ratio > 0:
		return 1.0
	case ratio > -0.3:
		return 0.9
	case ratio > -0.6:
		return 0.8
	default:
		return 0.7
	}
}

// freshnessFactor penalizes stale source timestamps. With no timestamps at
// all the factor defaults to 0.7 rather than assuming freshness.
func (s *UnifiedScorer) freshnessFactor(a *models.AssetAnalysis, now time.Time) float64 {
	if len(a.DataTimestamps) == 0 {
		return 0.7
	}

	var penalty float64
	for dim, ts := range a.DataTimestamps {
		threshold, ok := freshnessThresholds[dim]
		if !ok {
			continue
		}
		age := now.Sub(ts)
		switch {
		case age > 2*threshold:
			penalty += 0.15
		case age > threshold:
			penalty += 0.08
		}
	}

	factor := 1 - penalty
	if factor < 0.6 {
		factor = 0.6
	}
	return factor
}

// topDrivers names the n largest weighted contributors.
func topDrivers(breakdown []models.ScoreComponent, n int) []string {
	sorted := make([]models.ScoreComponent, len(breakdown))
	copy(sorted, breakdown)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Weighted > sorted[j].Weighted })

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	drivers := make([]string, 0, len(sorted))
	for _, c := range sorted {
		drivers = append(drivers, fmt.Sprintf("%s: %.0f/100 (weight %.2f)", c.Dimension, c.Score, c.Weight))
	}
	return drivers
}
