package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

// HealthCheck probes one dependency. Only a failing critical check turns the
// endpoint unhealthy; the balance cache is optional.
type HealthCheck struct {
	Probe    func(ctx context.Context) error
	Critical bool
}

// HealthHandler reports whether the service and its dependencies answer
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	logger  coreport.Logger
}

// NewHealthHandler creates a new health handler; checks may be empty
func NewHealthHandler(checks map[string]HealthCheck, timeout time.Duration, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: timeout,
		logger:  logger,
	}
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	response := dto.HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	status := http.StatusOK

	for _, name := range names {
		check := h.checks[name]
		if err := check.Probe(ctx); err != nil {
			h.logger.Warn("Health check failed", map[string]any{
				"check":    name,
				"critical": check.Critical,
				"error":    err.Error(),
			})
			response.Checks[name] = "down"
			if check.Critical {
				response.Status = "unavailable"
				status = http.StatusServiceUnavailable
			} else if response.Status == "ok" {
				response.Status = "degraded"
			}
			continue
		}
		response.Checks[name] = "up"
	}

	c.JSON(status, response)
}
