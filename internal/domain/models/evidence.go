package models

import "time"

// Direction is the trade direction implied by a dimension or asset view.
type Direction string

const (
	DirectionLong    Direction = "LONG"
	DirectionShort   Direction = "SHORT"
	DirectionNeutral Direction = "NEUTRAL"
)

// Opposite returns the mirrored direction; NEUTRAL has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionLong:
		return DirectionShort
	case DirectionShort:
		return DirectionLong
	default:
		return DirectionNeutral
	}
}

// Confidence is the confidence level reported by an upstream scorer.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// AssetClass classifies the traded instrument.
type AssetClass string

const (
	AssetForex     AssetClass = "FOREX"
	AssetCrypto    AssetClass = "CRYPTO"
	AssetCommodity AssetClass = "COMMODITY"
	AssetIndex     AssetClass = "INDEX"
	AssetStock     AssetClass = "STOCK"
	AssetBond      AssetClass = "BOND"
)

// Dimension identifies one evidence source feeding the decision pipeline.
type Dimension string

const (
	DimMacro            Dimension = "macro"
	DimMeso             Dimension = "meso"
	DimMicro            Dimension = "micro"
	DimLiquidityMap     Dimension = "liquidityMap"
	DimCurrencyStrength Dimension = "currencyStrength"
	DimFundamentals     Dimension = "fundamentals"
	DimSentiment        Dimension = "sentiment"
	// DimCalendar is reserved; no upstream scorer feeds it yet.
	DimCalendar Dimension = "calendar"
)

// RealDimensions lists the seven dimensions wired to upstream scorers, in
// evaluation order.
var RealDimensions = []Dimension{
	DimMacro, DimMeso, DimMicro, DimLiquidityMap,
	DimCurrencyStrength, DimFundamentals, DimSentiment,
}

// DirectionalDimensions lists the dimensions whose direction participates in
// alignment scoring. Fundamentals is score-only.
var DirectionalDimensions = []Dimension{
	DimMacro, DimMeso, DimMicro, DimLiquidityMap, DimCurrencyStrength, DimSentiment,
}

// DimensionInput is one piece of evidence produced by an external scorer.
// A nil Score means the scorer produced nothing this cycle.
type DimensionInput struct {
	Score      *float64       `json:"score"`
	Direction  Direction      `json:"direction"`
	Confidence Confidence     `json:"confidence"`
	Timestamp  time.Time      `json:"timestamp"`
	Source     string         `json:"source"`
	Details    map[string]any `json:"details,omitempty"`
}

// AssetAnalysis is the full evidence bundle for one asset on one evaluation
// tick. It is supplied by upstream scorers and never mutated by the core.
type AssetAnalysis struct {
	Symbol        string     `json:"symbol" validate:"required"`
	DisplaySymbol string     `json:"displaySymbol"`
	AssetClass    AssetClass `json:"assetClass" validate:"required,oneof=FOREX CRYPTO COMMODITY INDEX STOCK BOND"`
	Direction     Direction  `json:"direction" validate:"required,oneof=LONG SHORT NEUTRAL"`
	Price         float64    `json:"price" validate:"gt=0"`

	Macro            *DimensionInput `json:"macro,omitempty"`
	Meso             *DimensionInput `json:"meso,omitempty"`
	Micro            *DimensionInput `json:"micro,omitempty"`
	LiquidityMap     *DimensionInput `json:"liquidityMap,omitempty"`
	CurrencyStrength *DimensionInput `json:"currencyStrength,omitempty"`
	Fundamentals     *DimensionInput `json:"fundamentals,omitempty"`
	Sentiment        *DimensionInput `json:"sentiment,omitempty"`

	DataTimestamps map[Dimension]time.Time `json:"dataTimestamps,omitempty"`
}

// Input returns the evidence slot for dim, nil when the dimension is not
// supplied (calendar is never supplied).
func (a *AssetAnalysis) Input(dim Dimension) *DimensionInput {
	switch dim {
	case DimMacro:
		return a.Macro
	case DimMeso:
		return a.Meso
	case DimMicro:
		return a.Micro
	case DimLiquidityMap:
		return a.LiquidityMap
	case DimCurrencyStrength:
		return a.CurrencyStrength
	case DimFundamentals:
		return a.Fundamentals
	case DimSentiment:
		return a.Sentiment
	default:
		return nil
	}
}

// Regime labels the externally detected macro regime.
type Regime string

const (
	RegimeRiskOn         Regime = "RISK_ON"
	RegimeRiskOff        Regime = "RISK_OFF"
	RegimeLiquidityDrain Regime = "LIQUIDITY_DRAIN"
	RegimeCreditStress   Regime = "CREDIT_STRESS"
	RegimeTransition     Regime = "TRANSITION"
	RegimeUncertain      Regime = "UNCERTAIN"
)

// Critical reports whether the regime forces long-side tier floors.
func (r Regime) Critical() bool {
	return r == RegimeLiquidityDrain || r == RegimeCreditStress
}

// RegimeSnapshot is the regime detector's current view.
type RegimeSnapshot struct {
	Regime     Regime             `json:"regime" validate:"required"`
	Axes       map[string]float64 `json:"axes,omitempty"`
	Confidence float64            `json:"confidence"`
}

// MicroOverride carries optional technical-analysis levels that take
// precedence over ATR-derived plan geometry.
type MicroOverride struct {
	Entry       *float64 `json:"entry,omitempty"`
	StopLoss    *float64 `json:"stopLoss,omitempty"`
	TakeProfit1 *float64 `json:"takeProfit1,omitempty"`
	TakeProfit2 *float64 `json:"takeProfit2,omitempty"`
	TakeProfit3 *float64 `json:"takeProfit3,omitempty"`
	RiskReward  *float64 `json:"riskReward,omitempty"`
	ATR         *float64 `json:"atr,omitempty"`
}
