package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one probed dependency.
type HealthCheck struct {
	Name   string
	Pinger Pinger
}

// HealthResponse reports service and dependency status.
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler serves the open health endpoint
type HealthHandler struct {
	BaseHandler
	service string
	started time.Time
	timeout time.Duration
	checks  []HealthCheck
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(service string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		service: service,
		started: time.Now(),
		timeout: 2 * time.Second,
		checks:  checks,
	}
}

// Health handles GET /health. Any failing dependency answers 503.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Service:   h.service,
		Timestamp: time.Now(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Checks:    make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK
	for _, check := range h.checks {
		if err := check.Pinger.Ping(ctx); err != nil {
			resp.Checks[check.Name] = "unhealthy: " + err.Error()
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "healthy"
	}

	if status != http.StatusOK {
		c.JSON(status, dto.Response{
			Success: false,
			Data:    resp,
			Error:   &dto.ErrorInfo{Code: dto.ErrCodeUnavailable, Message: "Dependency check failed", RequestID: requestID(c)},
		})
		return
	}
	h.Success(c, resp)
}
