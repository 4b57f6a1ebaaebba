package models

import "time"

// EdgeQuality grades the statistical edge computed by the Kelly calculator.
type EdgeQuality string

const (
	EdgeStrong   EdgeQuality = "STRONG"
	EdgeModerate EdgeQuality = "MODERATE"
	EdgeWeak     EdgeQuality = "WEAK"
	EdgeNegative EdgeQuality = "NEGATIVE"
)

// KellyResult is the optimal risk fraction derived from trade statistics.
// Recommended is a fraction of equity; MaxPosition the same value in percent.
type KellyResult struct {
	FullKelly    float64     `json:"fullKelly"`
	HalfKelly    float64     `json:"halfKelly"`
	QuarterKelly float64     `json:"quarterKelly"`
	Recommended  float64     `json:"recommended"`
	MaxPosition  float64     `json:"maxPosition"`
	EdgeQuality  EdgeQuality `json:"edgeQuality"`
	WinRate      float64     `json:"winRate"`
	PayoffRatio  float64     `json:"payoffRatio"`
	SampleSize   int         `json:"sampleSize"`
	Fallback     bool        `json:"fallback"`
}

// DrawdownStatus orders equity stress by strictly increasing severity.
type DrawdownStatus string

const (
	DrawdownHealthy        DrawdownStatus = "HEALTHY"
	DrawdownCaution        DrawdownStatus = "CAUTION"
	DrawdownWarning        DrawdownStatus = "WARNING"
	DrawdownCritical       DrawdownStatus = "CRITICAL"
	DrawdownCircuitBreaker DrawdownStatus = "CIRCUIT_BREAKER"
)

// SizeMultiplier maps drawdown stress to a position-size scale factor.
func (s DrawdownStatus) SizeMultiplier() float64 {
	switch s {
	case DrawdownHealthy:
		return 1.0
	case DrawdownCaution:
		return 0.75
	case DrawdownWarning:
		return 0.5
	case DrawdownCritical:
		return 0.25
	default:
		return 0
	}
}

// DrawdownState is the equity-curve drawdown snapshot.
type DrawdownState struct {
	CurrentDrawdown  float64        `json:"currentDrawdown"`
	MaxDrawdown      float64        `json:"maxDrawdown"`
	PeakEquity       float64        `json:"peakEquity"`
	CurrentEquity    float64        `json:"currentEquity"`
	DrawdownDuration int            `json:"drawdownDuration"`
	RecoveryFactor   float64        `json:"recoveryFactor"`
	Status           DrawdownStatus `json:"status"`
}

// BreakerAction is what a triggered circuit breaker demands.
type BreakerAction string

const (
	BreakerReduceSize BreakerAction = "REDUCE_SIZE"
	BreakerHaltNew    BreakerAction = "HALT_NEW"
	BreakerCloseAll   BreakerAction = "CLOSE_ALL"
	BreakerAlertOnly  BreakerAction = "ALERT_ONLY"
)

// CircuitBreaker is one independent risk tripwire evaluation.
type CircuitBreaker struct {
	Name         string        `json:"name"`
	Triggered    bool          `json:"triggered"`
	Threshold    float64       `json:"threshold"`
	CurrentValue float64       `json:"currentValue"`
	Action       BreakerAction `json:"action"`
	Message      string        `json:"message"`
}

// CorrelationAdjustedRisk is the correlation-aware reshaping of a proposed
// position's risk.
type CorrelationAdjustedRisk struct {
	BaseRisk           float64 `json:"baseRisk"`
	AvgCorrelation     float64 `json:"avgCorrelation"`
	Penalty            float64 `json:"penalty"`
	Benefit            float64 `json:"benefit"`
	AdjustedRisk       float64 `json:"adjustedRisk"`
	CorrelatedExposure float64 `json:"correlatedExposure"`
	EffectiveRisk      float64 `json:"effectiveRisk"`
}

// BudgetStatus classifies risk-budget utilization.
type BudgetStatus string

const (
	BudgetUnderutilized BudgetStatus = "UNDERUTILIZED"
	BudgetOptimal       BudgetStatus = "OPTIMAL"
	BudgetStretched     BudgetStatus = "STRETCHED"
	BudgetMaxed         BudgetStatus = "MAXED"
)

// RiskBudget tracks total versus deployed portfolio risk.
type RiskBudget struct {
	TotalBudget     float64      `json:"totalBudget"`
	ReserveBuffer   float64      `json:"reserveBuffer"`
	EffectiveBudget float64      `json:"effectiveBudget"`
	UsedBudget      float64      `json:"usedBudget"`
	AvailableBudget float64      `json:"availableBudget"`
	Utilization     float64      `json:"utilization"`
	Status          BudgetStatus `json:"status"`
}

// PositionSizeResult is the final sized quantity with its clamp trace.
type PositionSizeResult struct {
	RiskPercent  float64  `json:"riskPercent"`
	Quantity     float64  `json:"quantity"`
	PositionSize float64  `json:"positionSize"`
	Reasoning    []string `json:"reasoning"`
}

// AlertLevel grades risk report alerts.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "INFO"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

// RiskAlert is one entry in the risk report's alert list.
type RiskAlert struct {
	Level   AlertLevel `json:"level"`
	Source  string     `json:"source"`
	Message string     `json:"message"`
}

// TradingStatus is the report's overall verdict on new risk taking.
type TradingStatus string

const (
	TradingNormal  TradingStatus = "NORMAL"
	TradingReduced TradingStatus = "REDUCED"
	TradingHalted  TradingStatus = "HALTED"
)

// PortfolioSummary condenses account health for the report header.
type PortfolioSummary struct {
	Equity      float64 `json:"equity"`
	TotalReturn float64 `json:"totalReturn"`
	TradeCount  int     `json:"tradeCount"`
	WinRate     float64 `json:"winRate"`
	OpenRisk    float64 `json:"openRisk"`
}

// InstitutionalRiskReport aggregates every risk module into one snapshot.
type InstitutionalRiskReport struct {
	GeneratedAt     time.Time                `json:"generatedAt"`
	Portfolio       PortfolioSummary         `json:"portfolio"`
	Kelly           KellyResult              `json:"kelly"`
	Drawdown        DrawdownState            `json:"drawdown"`
	CircuitBreakers []CircuitBreaker         `json:"circuitBreakers"`
	Correlation     *CorrelationAdjustedRisk `json:"correlation,omitempty"`
	Budget          RiskBudget               `json:"budget"`
	Alerts          []RiskAlert              `json:"alerts"`
	Recommendations []string                 `json:"recommendations"`
	TradingStatus   TradingStatus            `json:"tradingStatus"`
}
