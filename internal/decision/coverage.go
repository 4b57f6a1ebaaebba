package decision

import (
	"time"

	"RiskDesk/internal/domain/models"
)

// freshnessThresholds is how old each source may be before it is no longer
// considered current. Derived from each scorer's publish cadence.
var freshnessThresholds = map[models.Dimension]time.Duration{
	models.DimMacro:            30 * time.Minute,
	models.DimMeso:             15 * time.Minute,
	models.DimMicro:            2 * time.Minute,
	models.DimLiquidityMap:     5 * time.Minute,
	models.DimCurrencyStrength: 5 * time.Minute,
	models.DimFundamentals:     60 * time.Minute,
	models.DimSentiment:        10 * time.Minute,
}

// coverageSlots counts the calendar placeholder alongside the seven real
// dimensions, so the ratio denominator stays 8.
const coverageSlots = 8

// maxConfidenceByTier is the hard confidence ceiling per coverage tier.
var maxConfidenceByTier = map[models.CoverageTier]float64{
	models.CoverageFull:    100,
	models.CoverageHigh:    85,
	models.CoverageMedium:  70,
	models.CoverageLow:     55,
	models.CoverageMinimal: 40,
}

// CoverageEvaluator grades the freshness and availability of each evidence
// dimension and derives the attainable confidence ceiling.
type CoverageEvaluator struct{}

func NewCoverageEvaluator() *CoverageEvaluator { return &CoverageEvaluator{} }

// Evaluate scores coverage for a single asset as of now.
func (e *CoverageEvaluator) Evaluate(a *models.AssetAnalysis, now time.Time) models.DataCoverage {
	dims := make(map[models.Dimension]models.DimensionCoverage, coverageSlots)
	available := 0

	for _, dim := range models.RealDimensions {
		dc := e.evaluateDimension(a.Input(dim), freshnessThresholds[dim], now)
		if dc.Available {
			available++
		}
		dims[dim] = dc
	}

	// Calendar has no upstream source wired; it still occupies a slot.
	dims[models.DimCalendar] = models.DimensionCoverage{Quality: models.FreshnessUnavailable}

	ratio := float64(available) / coverageSlots
	tier := coverageTierFor(ratio)

	return models.DataCoverage{
		Dimensions:            dims,
		AvailableCount:        available,
		TotalCoverage:         ratio,
		CoverageTier:          tier,
		MaxConfidencePossible: maxConfidenceByTier[tier],
	}
}

func (e *CoverageEvaluator) evaluateDimension(in *models.DimensionInput, threshold time.Duration, now time.Time) models.DimensionCoverage {
	if in == nil || in.Score == nil {
		return models.DimensionCoverage{Quality: models.FreshnessUnavailable}
	}

	age := now.Sub(in.Timestamp)
	quality := models.FreshnessStale
	score := 0.3
	switch {
	case age < threshold/2:
		quality = models.FreshnessFresh
		score = 1.0
	case age < threshold:
		quality = models.FreshnessRecent
		score = 0.7
	}

	return models.DimensionCoverage{
		Available:  true,
		Quality:    quality,
		LastUpdate: in.Timestamp,
		Score:      score,
	}
}

func coverageTierFor(ratio float64) models.CoverageTier {
	switch {
	case ratio >= 0.85:
		return models.CoverageFull
	case ratio >= 0.70:
		return models.CoverageHigh
	case ratio >= 0.50:
		return models.CoverageMedium
	case ratio >= 0.30:
		return models.CoverageLow
	default:
		return models.CoverageMinimal
	}
}
