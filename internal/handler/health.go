package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/showtracker/internal/config"
	"github.com/deppfellow/showtracker/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var errNotConfigured = errors.New("not configured")

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports whether the service and its dependencies are
// reachable. The database is required; redis only backs background jobs,
// so its failure is reported without failing the check.
type HealthHandler struct {
	Handler
	database Pinger
	redis    Pinger
}

func NewHealthHandler(h Handler) *HealthHandler {
	handler := &HealthHandler{Handler: h}

	if h.server.DB != nil {
		handler.database = h.server.DB
	}
	if h.server.Redis != nil {
		client := h.server.Redis
		handler.redis = PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	return handler
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth returns 200 when every required probe passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	if obs == nil {
		obs = config.DefaultObservabilityConfig()
	}

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	if obs.HealthChecks.Enabled {
		ctx := c.Request().Context()

		if obs.HealthCheckEnabled("database") {
			result, err := h.probe(ctx, &logger, "database", h.database, obs.HealthCheckTimeout())
			response.Checks["database"] = result
			if err != nil {
				response.Status = "unhealthy"
			}
		}

		if obs.HealthCheckEnabled("redis") && h.redis != nil {
			result, _ := h.probe(ctx, &logger, "redis", h.redis, obs.HealthCheckTimeout())
			response.Checks["redis"] = result
		}
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) probe(
	ctx context.Context,
	logger *zerolog.Logger,
	name string,
	target Pinger,
	timeout time.Duration,
) (checkResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	probeStart := time.Now()

	err := errNotConfigured
	if target != nil {
		err = target.Ping(ctx)
	}
	elapsed := time.Since(probeStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check probe failed")

		h.recordHealthEvent(map[string]any{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return checkResult{
			Status:       "unhealthy",
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}, err
	}

	return checkResult{
		Status:       "healthy",
		ResponseTime: elapsed.String(),
	}, nil
}

func (h *HealthHandler) recordHealthEvent(params map[string]any) {
	if h.server.LoggerService == nil {
		return
	}
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", params)
	}
}
