package usecase

import (
	"context"
	"fmt"
	"time"

	"RiskDesk/internal/domain/models"
	domrepo "RiskDesk/internal/domain/repository"
	"RiskDesk/internal/risk"
	applogger "RiskDesk/pkg/logger"
)

// RiskService assembles portfolio state from the store and produces risk
// reports and position sizes on demand.
type RiskService struct {
	reports     *risk.ReportGenerator
	correlation *risk.CorrelationRiskAdjuster
	sizer       *risk.PositionSizer
	store       domrepo.PortfolioStore
	metrics     domrepo.Metrics
	log         *applogger.Logger
}

func NewRiskService(
	reports *risk.ReportGenerator,
	store domrepo.PortfolioStore,
	metrics domrepo.Metrics,
	log *applogger.Logger,
) *RiskService {
	return &RiskService{
		reports:     reports,
		correlation: risk.NewCorrelationRiskAdjuster(),
		sizer:       risk.NewPositionSizer(),
		store:       store,
		metrics:     metrics,
		log:         log,
	}
}

// Report regenerates the institutional risk report from current portfolio
// state.
func (s *RiskService) Report(ctx context.Context, req *models.RiskReportRequest, now time.Time) (models.InstitutionalRiskReport, error) {
	start := time.Now()

	state, err := s.assembleState(ctx, req.Lookback, req.VIX)
	if err != nil {
		s.metrics.RecordError("risk_state")
		return models.InstitutionalRiskReport{}, fmt.Errorf("assemble portfolio state: %w", err)
	}

	report := s.reports.Generate(state, now)
	s.metrics.RecordTradingStatus(tradingStatusLevel(report.TradingStatus))
	s.metrics.RecordLatency("risk_report", time.Since(start).Seconds())
	return report, nil
}

// PositionSize computes the final sized position for a candidate trade,
// folding Kelly, drawdown, correlation and budget constraints together.
func (s *RiskService) PositionSize(ctx context.Context, req *models.PositionSizeRequest, now time.Time) (models.PositionSizeResult, error) {
	state, err := s.assembleState(ctx, req.Lookback, nil)
	if err != nil {
		s.metrics.RecordError("risk_state")
		return models.PositionSizeResult{}, fmt.Errorf("assemble portfolio state: %w", err)
	}

	report := s.reports.Generate(state, now)
	adjusted := s.correlation.Adjust(report.Kelly.Recommended*100, state.Positions)

	equity := report.Drawdown.CurrentEquity
	result := s.sizer.Size(risk.SizeRequest{
		Kelly:       report.Kelly,
		Drawdown:    report.Drawdown,
		Correlation: adjusted,
		Budget:      report.Budget,
		Equity:      equity,
		Entry:       req.Entry,
		StopLoss:    req.StopLoss,
	})

	s.log.Info("position sized",
		applogger.String("symbol", req.Symbol),
		applogger.Float64("risk_percent", result.RiskPercent),
		applogger.Float64("quantity", result.Quantity),
	)
	return result, nil
}

// Health reports whether the portfolio store is reachable.
func (s *RiskService) Health(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Health(ctx)
}

// assembleState pulls trades, equity curve and positions from the store and
// derives the rolling PnL figures the breaker bank consumes.
func (s *RiskService) assembleState(ctx context.Context, lookback int, vix *float64) (models.PortfolioState, error) {
	if s.store == nil {
		return models.PortfolioState{VIX: vix}, nil
	}

	trades, err := s.store.Trades(ctx, lookback)
	if err != nil {
		return models.PortfolioState{}, fmt.Errorf("load trades: %w", err)
	}
	curve, err := s.store.EquityCurve(ctx, lookback)
	if err != nil {
		return models.PortfolioState{}, fmt.Errorf("load equity curve: %w", err)
	}
	positions, err := s.store.OpenPositions(ctx)
	if err != nil {
		return models.PortfolioState{}, fmt.Errorf("load open positions: %w", err)
	}

	return models.PortfolioState{
		Trades:            trades,
		EquityCurve:       curve,
		Positions:         positions,
		DailyPnL:          pnlOverDays(curve, 1),
		WeeklyPnL:         pnlOverDays(curve, 7),
		ConsecutiveLosses: trailingLosses(trades),
		VIX:               vix,
	}, nil
}

// pnlOverDays returns the percent equity change from the most recent point
// at least the given number of days old to the latest point.
func pnlOverDays(curve []models.EquityPoint, days int) float64 {
	if len(curve) < 2 {
		return 0
	}
	last := curve[len(curve)-1]
	cutoff := last.Date.AddDate(0, 0, -days)

	base := curve[0]
	for i := len(curve) - 2; i >= 0; i-- {
		if !curve[i].Date.After(cutoff) {
			base = curve[i]
			break
		}
	}
	if base.Equity == 0 {
		return 0
	}
	return (last.Equity - base.Equity) / base.Equity * 100
}

// trailingLosses counts the losing streak at the end of the trade history.
func trailingLosses(trades []models.TradeRecord) int {
	losses := 0
	for i := len(trades) - 1; i >= 0; i-- {
		if trades[i].PnL >= 0 {
			break
		}
		losses++
	}
	return losses
}

func tradingStatusLevel(status models.TradingStatus) float64 {
	switch status {
	case models.TradingHalted:
		return 2
	case models.TradingReduced:
		return 1
	default:
		return 0
	}
}
