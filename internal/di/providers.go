package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"RiskDesk/internal/decision"
	"RiskDesk/internal/domain/repository"
	"RiskDesk/internal/handler/api"
	internalrepo "RiskDesk/internal/repository"
	"RiskDesk/internal/risk"
	icache "RiskDesk/internal/service/cache"
	"RiskDesk/internal/service/stream"
	"RiskDesk/internal/usecase"
	pkgcache "RiskDesk/pkg/cache"
	pkgch "RiskDesk/pkg/clickhouse"
	"RiskDesk/pkg/config"
	xhttp "RiskDesk/pkg/http"
	pkgkafka "RiskDesk/pkg/kafka"
	applogger "RiskDesk/pkg/logger"
	"RiskDesk/pkg/metrics"
	"RiskDesk/pkg/server"
)

// ProvideLogger creates the application logger. Production gets JSON,
// everything else a console writer.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "console"
	level := "debug"
	if cfg.Environment == "production" {
		format = "json"
		level = "info"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client and applies the
// portfolio schema. Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil when Kafka is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePortfolioStore creates the ClickHouse-backed portfolio store.
func ProvidePortfolioStore(chClient *pkgch.Client, cfg *config.Config) repository.PortfolioStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHousePortfolioStore(chClient.DB(), cfg.ClickHouse.Database)
}

// ProvideDecisionPublisher creates the Kafka decision publisher.
func ProvideDecisionPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.DecisionPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaDecisionPublisher(producer, cfg.Kafka.Topic)
}

// ProvidePipeline creates the decision pipeline.
func ProvidePipeline() *decision.Pipeline {
	return decision.NewPipeline()
}

// ProvideReportGenerator creates the risk report generator with the
// configured risk budget.
func ProvideReportGenerator(cfg *config.Config) *risk.ReportGenerator {
	budget := risk.NewRiskBudgetTrackerWith(cfg.Risk.TotalBudget, cfg.Risk.ReserveBuffer)
	return risk.NewReportGeneratorWith(budget)
}

// ProvideHub creates the decision broadcast hub.
func ProvideHub(log *applogger.Logger) *stream.Hub {
	return stream.NewHub(log)
}

// ProvideDecisionService creates the decision use case.
func ProvideDecisionService(
	pipeline *decision.Pipeline,
	store repository.PortfolioStore,
	publisher repository.DecisionPublisher,
	m repository.Metrics,
	hub *stream.Hub,
	log *applogger.Logger,
) *usecase.DecisionService {
	return usecase.NewDecisionService(pipeline, store, publisher, m, hub, log)
}

// ProvideRiskService creates the risk use case.
func ProvideRiskService(
	reports *risk.ReportGenerator,
	store repository.PortfolioStore,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.RiskService {
	return usecase.NewRiskService(reports, store, m, log)
}

// ProvideHandler creates the HTTP handler with response caching.
func ProvideHandler(
	cfg *config.Config,
	decisions *usecase.DecisionService,
	risks *usecase.RiskService,
	hub *stream.Hub,
	log *applogger.Logger,
) xhttp.Handler {
	h := api.NewDecisionsHandler(decisions, risks, hub, log, api.Options{
		DecisionTTL:   cfg.Cache.TTL.Decision,
		RiskReportTTL: cfg.Cache.TTL.RiskReport,
		RateLimit:     cfg.RateLimit.Enabled,
		Rate:          cfg.RateLimit.Rate,
		Burst:         float64(cfg.RateLimit.Burst),
	})
	h.SetCache(provideResponseCache(cfg, log))
	return h
}

// provideResponseCache builds the HTTP response cache. Redis gets a
// memory-fronted layered cache, otherwise a plain in-process TTL cache.
func provideResponseCache(cfg *config.Config, log *applogger.Logger) icache.BytesCache {
	if !cfg.Cache.Redis.Enabled {
		return icache.NewTTLCache()
	}

	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		host = cfg.Cache.Redis.Addr
		portStr = "6379"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}

	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		log.Warn("redis unavailable, using in-process cache", applogger.Error(err))
		return icache.NewTTLCache()
	}
	return icache.NewServiceCache(pkgcache.NewLayeredCache(redisCache))
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	decisions *usecase.DecisionService,
	chClient *pkgch.Client,
	hub *stream.Hub,
	log *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, decisions, chClient, hub, log)
}
