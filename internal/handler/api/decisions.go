package api

import (
	"encoding/json"
	"net/http"
	"time"

	models "RiskDesk/internal/domain/models"
	icache "RiskDesk/internal/service/cache"
	"RiskDesk/internal/service/metrics"
	"RiskDesk/internal/service/ratelimit"
	"RiskDesk/internal/service/stream"
	"RiskDesk/internal/usecase"
	pcache "RiskDesk/pkg/cache"
	xhttp "RiskDesk/pkg/http"
	applogger "RiskDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Options tunes response caching and per-client rate limiting.
type Options struct {
	DecisionTTL   time.Duration
	RiskReportTTL time.Duration
	RateLimit     bool
	Rate          float64
	Burst         float64
}

// DecisionsHandler exposes the decision engine and risk manager over HTTP.
type DecisionsHandler struct {
	decisions *usecase.DecisionService
	risks     *usecase.RiskService
	hub       *stream.Hub
	cache     icache.BytesCache
	rl        *ratelimit.Limiter
	opts      Options
	log       *applogger.Logger
}

func NewDecisionsHandler(
	decisions *usecase.DecisionService,
	risks *usecase.RiskService,
	hub *stream.Hub,
	log *applogger.Logger,
	opts Options,
) *DecisionsHandler {
	metrics.Register()
	return &DecisionsHandler{
		decisions: decisions,
		risks:     risks,
		hub:       hub,
		rl:        ratelimit.New(),
		opts:      opts,
		log:       log,
	}
}

// SetCache injects a response cache.
func (h *DecisionsHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *DecisionsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/decisions", h.Decisions)
	g.GET("/risk-report", h.RiskReport)
	g.GET("/position-size", h.PositionSize)
	e.GET("/healthz", h.Health)
	e.GET("/ws/decisions", h.Stream)
}

// Decisions evaluates a batch of analyzed assets and returns ranked
// trade decisions.
func (h *DecisionsHandler) Decisions(c echo.Context) error {
	start := time.Now()
	endpoint := "decisions"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.DecisionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := h.cacheKey(c, endpoint, req)
	if b, ok := h.cached(endpoint, key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	decisions, err := h.decisions.Evaluate(c.Request().Context(), req, h.evalTime(c))
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.log.Error("decisions usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondCached(c, endpoint, key, decisions, h.opts.DecisionTTL)
}

// RiskReport regenerates the institutional risk report.
func (h *DecisionsHandler) RiskReport(c echo.Context) error {
	start := time.Now()
	endpoint := "risk_report"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.RiskReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := h.cacheKey(c, endpoint, req)
	if b, ok := h.cached(endpoint, key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	report, err := h.risks.Report(c.Request().Context(), req, h.evalTime(c))
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.log.Error("risk report usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondCached(c, endpoint, key, report, h.opts.RiskReportTTL)
}

// PositionSize sizes a single candidate trade against current portfolio
// risk. Not cached, every call sees fresh constraints.
func (h *DecisionsHandler) PositionSize(c echo.Context) error {
	start := time.Now()
	endpoint := "position_size"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.PositionSizeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.risks.PositionSize(c.Request().Context(), req, h.evalTime(c))
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.log.Error("position size usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Health checks the portfolio store connection.
func (h *DecisionsHandler) Health(c echo.Context) error {
	if err := h.risks.Health(c.Request().Context()); err != nil {
		h.log.Warn("health check failed", applogger.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Stream upgrades the connection and feeds the client every decision
// evaluated after it joins.
func (h *DecisionsHandler) Stream(c echo.Context) error {
	return h.hub.Serve(c.Response(), c.Request())
}

// evalTime resolves the evaluation clock. An optional "at" query parameter
// pins it, so historical inputs replay deterministically.
func (h *DecisionsHandler) evalTime(c echo.Context) time.Time {
	return xhttp.ParseTimeDefault(c.QueryParam("at"), time.Now().UTC())
}

func (h *DecisionsHandler) allow(c echo.Context, endpoint string) bool {
	if !h.opts.RateLimit {
		return true
	}
	if h.rl.Allow(c.RealIP()+":"+endpoint, h.opts.Burst, h.opts.Rate) {
		return true
	}
	h.log.Warn("rate limited",
		applogger.String("endpoint", endpoint),
		applogger.String("remote", c.RealIP()),
	)
	return false
}

// cacheKey derives a stable key from the canonical JSON of the request.
// The evaluation clock override is part of the key so pinned replays never
// collide with live responses.
func (h *DecisionsHandler) cacheKey(c echo.Context, endpoint string, req interface{}) string {
	b, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	if at := c.QueryParam("at"); at != "" {
		b = append(b, at...)
	}
	return endpoint + ":" + pcache.HashKey(b)
}

func (h *DecisionsHandler) cached(endpoint, key string) ([]byte, bool) {
	if h.cache == nil || key == "" {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.log.Warn("cache get error", applogger.String("endpoint", endpoint), applogger.Error(err))
		return nil, false
	}
	if ok {
		metrics.CacheHits.WithLabelValues(endpoint).Inc()
	}
	return b, ok
}

// respondCached stores the full response envelope so cache hits replay
// byte-identical bodies.
func (h *DecisionsHandler) respondCached(c echo.Context, endpoint, key string, data interface{}, ttl time.Duration) error {
	body, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	})
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.log.Error("response marshal error", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	if h.cache != nil && key != "" && ttl > 0 {
		if err := h.cache.SetBytes(key, body, ttl); err != nil {
			h.log.Warn("cache set error", applogger.String("endpoint", endpoint), applogger.Error(err))
		}
	}
	return c.JSONBlob(http.StatusOK, body)
}
