package repository

import (
	"context"

	"RiskDesk/internal/domain/models"
)

// PortfolioStore reads portfolio history and persists produced decisions.
type PortfolioStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Trades(ctx context.Context, limit int) ([]models.TradeRecord, error)
	EquityCurve(ctx context.Context, lookback int) ([]models.EquityPoint, error)
	OpenPositions(ctx context.Context) ([]models.OpenPosition, error)
	StoreDecision(ctx context.Context, d *models.ActionDecision) error
	Health(ctx context.Context) error // ping
	Close() error
}

// DecisionPublisher fans produced decisions out to downstream consumers.
type DecisionPublisher interface {
	Publish(ctx context.Context, d *models.ActionDecision) error
	PublishBatch(ctx context.Context, decisions []*models.ActionDecision) error
	Close() error
}

type Metrics interface {
	RecordDecision(tier, action string)
	RecordDecisionScore(assetClass string, score float64)
	RecordTradingStatus(level float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
