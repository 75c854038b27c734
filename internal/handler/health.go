package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/labstack/echo/v4"
)

// dependencyCheck probes one backing service.
type dependencyCheck struct {
	name string
	// required checks turn the overall status unhealthy; the rest only degrade it.
	required bool
	probe    func(ctx context.Context) error
}

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	timeout time.Duration
	checks  []dependencyCheck
}

// NewHealthHandler probes the dependencies listed in the health check
// config. PostgreSQL is required; Redis only backs welcome emails.
func NewHealthHandler(s *server.Server) *HealthHandler {
	cfg := s.Config.Observability
	if cfg == nil {
		cfg = config.DefaultObservabilityConfig()
	}

	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: cfg.HealthChecks.Timeout,
	}
	if !cfg.HealthChecks.Enabled {
		return h
	}

	if cfg.HealthChecks.Includes("database") && s.DB != nil {
		h.checks = append(h.checks, dependencyCheck{
			name:     "database",
			required: true,
			probe:    s.DB.Pool.Ping,
		})
	}
	if cfg.HealthChecks.Includes("redis") && s.Redis != nil {
		h.checks = append(h.checks, dependencyCheck{
			name: "redis",
			probe: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			},
		})
	}
	return h
}

// CheckHealth answers 200 with status "healthy" or "degraded", or 503 with
// "unhealthy" when a required dependency fails.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	status := "healthy"
	checks := make(map[string]map[string]any, len(h.checks))

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.probe(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		result := map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		if err != nil {
			result["status"] = "unhealthy"
			result["error"] = err.Error()

			if check.required {
				status = "unhealthy"
			} else if status == "healthy" {
				status = "degraded"
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":       check.name,
					"operation":        "health_check",
					"response_time_ms": elapsed.Milliseconds(),
					"error_message":    err.Error(),
				})
			}
		}

		checks[check.name] = result
	}

	response := map[string]any{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	logger.Debug().
		Str("status", status).
		Dur("total_duration", time.Since(start)).
		Msg("health check completed")

	if status == "unhealthy" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}
