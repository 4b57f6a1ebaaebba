package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"RiskDesk/internal/domain/models"
	"RiskDesk/internal/domain/repository"
	pkgkafka "RiskDesk/pkg/kafka"
)

// ClickHousePortfolioStore implements PortfolioStore for ClickHouse.
type ClickHousePortfolioStore struct {
	db       *sql.DB
	database string
}

// NewClickHousePortfolioStore creates ClickHouse portfolio storage.
func NewClickHousePortfolioStore(db *sql.DB, database string) repository.PortfolioStore {
	return &ClickHousePortfolioStore{db: db, database: database}
}

func (s *ClickHousePortfolioStore) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHousePortfolioStore) Trades(ctx context.Context, limit int) ([]models.TradeRecord, error) {
	q := fmt.Sprintf(
		"SELECT symbol, pnl, risk, date FROM %s.trades ORDER BY date DESC LIMIT ?", s.database)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		var t models.TradeRecord
		if err := rows.Scan(&t.Symbol, &t.PnL, &t.Risk, &t.Date); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	// Trades are consumed in chronological order.
	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}
	return trades, rows.Err()
}

func (s *ClickHousePortfolioStore) EquityCurve(ctx context.Context, lookback int) ([]models.EquityPoint, error) {
	q := fmt.Sprintf(
		"SELECT date, equity FROM %s.equity_curve ORDER BY date DESC LIMIT ?", s.database)
	rows, err := s.db.QueryContext(ctx, q, lookback)
	if err != nil {
		return nil, fmt.Errorf("query equity curve: %w", err)
	}
	defer rows.Close()

	var points []models.EquityPoint
	for rows.Next() {
		var p models.EquityPoint
		if err := rows.Scan(&p.Date, &p.Equity); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, rows.Err()
}

func (s *ClickHousePortfolioStore) OpenPositions(ctx context.Context) ([]models.OpenPosition, error) {
	q := fmt.Sprintf(
		"SELECT symbol, risk, correlation FROM %s.open_positions FINAL", s.database)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query open positions: %w", err)
	}
	defer rows.Close()

	var positions []models.OpenPosition
	for rows.Next() {
		var p models.OpenPosition
		if err := rows.Scan(&p.Symbol, &p.Risk, &p.Correlation); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *ClickHousePortfolioStore) StoreDecision(ctx context.Context, d *models.ActionDecision) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	q := fmt.Sprintf(
		"INSERT INTO %s.decisions (evaluated_at, symbol, asset_class, direction, tier, action, score, payload) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		s.database)
	_, err = s.db.ExecContext(ctx, q,
		d.EvaluatedAt,
		d.Symbol,
		string(d.AssetClass),
		string(d.Direction),
		string(d.Tier),
		string(d.Action),
		d.Score.Score,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

func (s *ClickHousePortfolioStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHousePortfolioStore) Close() error {
	return nil // Managed by pkg
}

// Schema returns idempotent DDL for the tables the store expects.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.trades (symbol String, pnl Float64, risk Float64, date DateTime) ENGINE=MergeTree ORDER BY date", database),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.equity_curve (date DateTime, equity Float64) ENGINE=MergeTree ORDER BY date", database),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.open_positions (symbol String, risk Float64, correlation Float64, updated_at DateTime) ENGINE=ReplacingMergeTree(updated_at) ORDER BY symbol", database),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.decisions (evaluated_at DateTime, symbol String, asset_class String, direction String, tier String, action String, score Float64, payload String) ENGINE=MergeTree ORDER BY (symbol, evaluated_at)", database),
	}
}

// KafkaDecisionPublisher implements DecisionPublisher for Kafka.
type KafkaDecisionPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaDecisionPublisher creates Kafka decision publisher.
func NewKafkaDecisionPublisher(producer *pkgkafka.Producer, topic string) repository.DecisionPublisher {
	return &KafkaDecisionPublisher{producer: producer, topic: topic}
}

func (p *KafkaDecisionPublisher) Publish(ctx context.Context, d *models.ActionDecision) error {
	return p.producer.Publish(ctx, p.topic, []byte(d.Symbol), d)
}

func (p *KafkaDecisionPublisher) PublishBatch(ctx context.Context, decisions []*models.ActionDecision) error {
	if len(decisions) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(decisions))
	for i, d := range decisions {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(d.Symbol),
			Value: d,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaDecisionPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
