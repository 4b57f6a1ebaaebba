package models

// Requests for the decision and risk HTTP endpoints. Defined in domain for
// consistency and reuse.

type DecisionRequest struct {
	Assets []AssetAnalysis          `json:"assets" validate:"required,min=1,max=100,dive"`
	Regime *RegimeSnapshot          `json:"regime,omitempty"`
	Micro  map[string]MicroOverride `json:"micro,omitempty"`
}

type RiskReportRequest struct {
	VIX      *float64 `query:"vix" json:"vix,omitempty" validate:"omitempty,gte=0,lte=200"`
	Lookback int      `query:"lookback" json:"lookback" default:"250" validate:"gte=10,lte=5000"`
}

type PositionSizeRequest struct {
	Symbol   string  `query:"symbol" json:"symbol" validate:"required"`
	Entry    float64 `query:"entry" json:"entry" validate:"gt=0"`
	StopLoss float64 `query:"stop" json:"stopLoss" validate:"gt=0"`
	Lookback int     `query:"lookback" json:"lookback" default:"250" validate:"gte=10,lte=5000"`
}
