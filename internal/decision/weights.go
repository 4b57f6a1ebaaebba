package decision

import "RiskDesk/internal/domain/models"

// DimensionWeight is one cell of the class weight table. Applicable is
// explicit so that "weight configured as zero" reads as "dimension does not
// apply to this asset class" rather than a data-availability concern.
type DimensionWeight struct {
	Weight     float64
	Applicable bool
}

func w(v float64) DimensionWeight { return DimensionWeight{Weight: v, Applicable: true} }
func excluded() DimensionWeight   { return DimensionWeight{} }

// classWeights maps asset class to per-dimension weights. Weights per class
// sum to 1; excluded cells drop out of both numerator and denominator.
var classWeights = map[models.AssetClass]map[models.Dimension]DimensionWeight{
	models.AssetForex: {
		models.DimMacro:            w(0.25),
		models.DimMeso:             w(0.15),
		models.DimMicro:            w(0.20),
		models.DimLiquidityMap:     w(0.15),
		models.DimCurrencyStrength: w(0.20),
		models.DimFundamentals:     w(0.05),
		models.DimSentiment:        excluded(),
	},
	models.AssetCrypto: {
		models.DimMacro:            w(0.15),
		models.DimMeso:             w(0.15),
		models.DimMicro:            w(0.25),
		models.DimLiquidityMap:     w(0.20),
		models.DimCurrencyStrength: excluded(),
		models.DimFundamentals:     w(0.05),
		models.DimSentiment:        w(0.20),
	},
	models.AssetCommodity: {
		models.DimMacro:            w(0.25),
		models.DimMeso:             w(0.20),
		models.DimMicro:            w(0.15),
		models.DimLiquidityMap:     w(0.15),
		models.DimCurrencyStrength: w(0.10),
		models.DimFundamentals:     w(0.10),
		models.DimSentiment:        w(0.05),
	},
	models.AssetIndex: {
		models.DimMacro:            w(0.30),
		models.DimMeso:             w(0.20),
		models.DimMicro:            w(0.15),
		models.DimLiquidityMap:     w(0.10),
		models.DimCurrencyStrength: excluded(),
		models.DimFundamentals:     w(0.15),
		models.DimSentiment:        w(0.10),
	},
	models.AssetStock: {
		models.DimMacro:            w(0.15),
		models.DimMeso:             w(0.15),
		models.DimMicro:            w(0.20),
		models.DimLiquidityMap:     w(0.10),
		models.DimCurrencyStrength: excluded(),
		models.DimFundamentals:     w(0.30),
		models.DimSentiment:        w(0.10),
	},
	models.AssetBond: {
		models.DimMacro:            w(0.40),
		models.DimMeso:             w(0.15),
		models.DimMicro:            w(0.10),
		models.DimLiquidityMap:     w(0.10),
		models.DimCurrencyStrength: w(0.10),
		models.DimFundamentals:     w(0.15),
		models.DimSentiment:        excluded(),
	},
}

// defaultWeights covers asset classes without a dedicated row.
var defaultWeights = map[models.Dimension]DimensionWeight{
	models.DimMacro:            w(0.20),
	models.DimMeso:             w(0.15),
	models.DimMicro:            w(0.20),
	models.DimLiquidityMap:     w(0.15),
	models.DimCurrencyStrength: w(0.10),
	models.DimFundamentals:     w(0.10),
	models.DimSentiment:        w(0.10),
}

// WeightsFor returns the weight row for an asset class.
func WeightsFor(class models.AssetClass) map[models.Dimension]DimensionWeight {
	if row, ok := classWeights[class]; ok {
		return row
	}
	return defaultWeights
}
