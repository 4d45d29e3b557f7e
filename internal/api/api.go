// Package api provides the JSON API shared by every front-end: dashboard
// counters, comment listing and ingestion, bulk analysis, and spreadsheet
// export.
package api

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/econsult/commentnet-go/internal/analysis"
	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/export"
	"github.com/econsult/commentnet-go/internal/logging"
	"github.com/econsult/commentnet-go/internal/observability"
	"github.com/econsult/commentnet-go/internal/sentiment"
)

// statsCacheTTL bounds how stale the dashboard counters may get between
// writes. Every mutating endpoint flushes the cache anyway, so the TTL only
// matters when another process writes to the same database.
const statsCacheTTL = 30 * time.Second

// Controller manages the API routes and handlers.
type Controller struct {
	Echo       *echo.Echo
	Group      *echo.Group
	DS         datastore.Interface
	Settings   *conf.Settings
	Analysis   *analysis.Service
	Exporter   *export.Service
	Classifier *sentiment.Classifier

	statsCache *cache.Cache
	apiLogger  *slog.Logger
	metrics    *observability.Metrics
	startTime  time.Time
}

// New creates a new API controller and registers all routes under
// /api/v1 on the given echo instance.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings,
	analysisService *analysis.Service, exporter *export.Service,
	classifier *sentiment.Classifier, metrics *observability.Metrics) *Controller {

	c := &Controller{
		Echo:       e,
		Group:      e.Group("/api/v1"),
		DS:         ds,
		Settings:   settings,
		Analysis:   analysisService,
		Exporter:   exporter,
		Classifier: classifier,
		statsCache: cache.New(statsCacheTTL, time.Minute),
		apiLogger:  logging.ForService("api"),
		metrics:    metrics,
		startTime:  time.Now(),
	}

	c.initRoutes()
	return c
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	c.Group.GET("/health", c.HealthCheck)

	c.initDashboardRoutes()
	c.initCommentRoutes()
	c.initExportRoutes()

	if c.metrics != nil {
		c.Echo.GET("/metrics", echo.WrapHandler(c.metrics.Handler()))
	}
}

// ErrorResponse is the JSON shape of every API error.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// NewErrorResponse creates a new API error response.
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	errorStr := message
	if err != nil {
		errorStr = err.Error()
	}
	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: generateCorrelationID(),
	}
}

// generateCorrelationID creates a short random identifier for tracking one
// error across logs and API responses.
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// HandleError logs err and writes the standard error response.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	errorResp := NewErrorResponse(err, message, code)

	c.apiLogger.Error("API error",
		"correlation_id", errorResp.CorrelationID,
		"message", message,
		"error", errorResp.Error,
		"code", code,
		"path", ctx.Request().URL.Path,
		"method", ctx.Request().Method,
		"ip", ctx.RealIP())

	return ctx.JSON(code, errorResp)
}

// HealthCheck reports service liveness and database reachability.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	response := map[string]any{
		"status":    "healthy",
		"uptime":    time.Since(c.startTime).Round(time.Second).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if _, err := c.DS.CountAll(); err != nil {
		response["status"] = "degraded"
		response["database"] = "unreachable"
		return ctx.JSON(http.StatusServiceUnavailable, response)
	}
	response["database"] = "ok"
	return ctx.JSON(http.StatusOK, response)
}

// invalidateStatsCache drops all cached aggregates. Called by every handler
// that mutates the comment store.
func (c *Controller) invalidateStatsCache() {
	c.statsCache.Flush()
}
