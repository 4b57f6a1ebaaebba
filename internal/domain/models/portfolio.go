package models

import "time"

// TradeRecord is one closed trade from the portfolio store. Risk is the
// capital fraction risked at entry, used to express PnL in R-multiples.
type TradeRecord struct {
	Symbol string    `json:"symbol"`
	PnL    float64   `json:"pnl"`
	Risk   float64   `json:"risk"`
	Date   time.Time `json:"date"`
}

// RMultiple expresses the trade's PnL as a multiple of its initial risk.
func (t TradeRecord) RMultiple() float64 {
	if t.Risk == 0 {
		return 0
	}
	return t.PnL / t.Risk
}

// EquityPoint is one sample of the account equity curve.
type EquityPoint struct {
	Date   time.Time `json:"date"`
	Equity float64   `json:"equity"`
}

// OpenPosition is a currently held position with its risk allocation and
// correlation to a candidate position.
type OpenPosition struct {
	Symbol      string  `json:"symbol"`
	Risk        float64 `json:"risk"`
	Correlation float64 `json:"correlation"`
}

// PortfolioState bundles everything the risk subsystem consumes. It is
// assembled by the calling layer from the portfolio store; the core never
// fetches or persists it.
type PortfolioState struct {
	Trades            []TradeRecord  `json:"trades"`
	EquityCurve       []EquityPoint  `json:"equityCurve"`
	Positions         []OpenPosition `json:"positions"`
	DailyPnL          float64        `json:"dailyPnL"`
	WeeklyPnL         float64        `json:"weeklyPnL"`
	ConsecutiveLosses int            `json:"consecutiveLosses"`
	VIX               *float64       `json:"vix,omitempty"`
}
