package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"RiskDesk/internal/service/stream"
	"RiskDesk/internal/usecase"
	pkgch "RiskDesk/pkg/clickhouse"
	"RiskDesk/pkg/config"
	xhttp "RiskDesk/pkg/http"
	applogger "RiskDesk/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	decisions  *usecase.DecisionService
	chClient   *pkgch.Client
	hub        *stream.Hub
	httpServer *xhttp.Server
	log        *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	handler xhttp.Handler,
	decisions *usecase.DecisionService,
	chClient *pkgch.Client,
	hub *stream.Hub,
	log *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		handler:   handler,
		decisions: decisions,
		chClient:  chClient,
		hub:       hub,
		log:       log,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler, a.log,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("env", a.cfg.Environment),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server and closes all clients.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.hub != nil {
		if err := a.hub.Close(); err != nil {
			a.log.Warn("stream hub close error", applogger.Error(err))
		}
	}

	// Closes the decision publisher's Kafka writer.
	if a.decisions != nil {
		a.decisions.Close()
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
