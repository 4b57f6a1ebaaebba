//go:build wireinject
// +build wireinject

package di

import (
	"RiskDesk/pkg/config"
	"RiskDesk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvidePortfolioStore,
		ProvideDecisionPublisher,

		// Core engines
		ProvidePipeline,
		ProvideReportGenerator,
		ProvideHub,

		// Use cases
		ProvideDecisionService,
		ProvideRiskService,

		// HTTP surface and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
