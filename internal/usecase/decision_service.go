package usecase

import (
	"context"
	"time"

	"RiskDesk/internal/decision"
	"RiskDesk/internal/domain/models"
	domrepo "RiskDesk/internal/domain/repository"
	"RiskDesk/internal/service/stream"
	applogger "RiskDesk/pkg/logger"
)

// DecisionService evaluates batches of asset analyses through the decision
// pipeline and fans the results out to persistence, Kafka and stream
// subscribers. Side effects are best-effort; a storage or broker failure
// never fails the evaluation itself.
type DecisionService struct {
	pipeline  *decision.Pipeline
	store     domrepo.PortfolioStore
	publisher domrepo.DecisionPublisher
	metrics   domrepo.Metrics
	hub       *stream.Hub
	log       *applogger.Logger
}

func NewDecisionService(
	pipeline *decision.Pipeline,
	store domrepo.PortfolioStore,
	publisher domrepo.DecisionPublisher,
	metrics domrepo.Metrics,
	hub *stream.Hub,
	log *applogger.Logger,
) *DecisionService {
	return &DecisionService{
		pipeline:  pipeline,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		hub:       hub,
		log:       log,
	}
}

// Evaluate runs the pipeline over every asset in the request and returns the
// ranked decisions.
func (s *DecisionService) Evaluate(ctx context.Context, req *models.DecisionRequest, now time.Time) ([]models.ActionDecision, error) {
	start := time.Now()

	inputs := make([]decision.Input, 0, len(req.Assets))
	for i := range req.Assets {
		a := &req.Assets[i]
		var micro *models.MicroOverride
		if req.Micro != nil {
			if m, ok := req.Micro[a.Symbol]; ok {
				micro = &m
			}
		}
		inputs = append(inputs, decision.Input{
			Analysis: a,
			Regime:   req.Regime,
			Micro:    micro,
			Now:      now,
		})
	}

	decisions := s.pipeline.EvaluateAll(inputs)

	for i := range decisions {
		d := &decisions[i]
		s.metrics.RecordDecision(string(d.Tier), string(d.Action))
		s.metrics.RecordDecisionScore(string(d.AssetClass), d.Score.Score)
		s.sideEffects(ctx, d)
	}

	s.metrics.RecordLatency("evaluate_decisions", time.Since(start).Seconds())
	s.log.Info("decisions evaluated",
		applogger.Int("assets", len(req.Assets)),
		applogger.Duration("took_ms", time.Since(start)),
	)
	return decisions, nil
}

func (s *DecisionService) sideEffects(ctx context.Context, d *models.ActionDecision) {
	if s.store != nil {
		if err := s.store.StoreDecision(ctx, d); err != nil {
			s.metrics.RecordError("decision_store")
			s.log.Error("decision store failed",
				applogger.String("symbol", d.Symbol), applogger.Error(err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, d); err != nil {
			s.metrics.RecordError("decision_publish")
			s.log.Error("decision publish failed",
				applogger.String("symbol", d.Symbol), applogger.Error(err))
		}
	}
	if s.hub != nil {
		s.hub.Broadcast(d)
	}
}

// Close releases the downstream publisher.
func (s *DecisionService) Close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.log.Warn("publisher close failed", applogger.Error(err))
		}
	}
}
