// Package v1 provides the HTTP handlers of the chat backend.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/xiaot623/adgenie/internal/domain"
	"github.com/xiaot623/adgenie/internal/service"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)

	// Chat API
	e.POST("/chat/message", h.SendMessage)
	e.GET("/chat/ping", h.Ping)
	e.GET("/chat/history/:session_id", h.GetHistory)

	// Metrics API
	e.GET("/metrics/summary", h.GetSummary)
	e.GET("/metrics/status", h.GetStatus)

	e.GET("/health", h.Health)
}

// Root reports that the backend is up.
// GET /
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "AdGenie Backend Online"})
}

// Health returns health status.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.service.Ping(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("database ping failed")
		return c.JSON(http.StatusServiceUnavailable, domain.HealthStatus{
			Status:   "unhealthy",
			Version:  Version,
			Database: "unavailable",
		})
	}

	return c.JSON(http.StatusOK, domain.HealthStatus{
		Status:   "healthy",
		Version:  Version,
		Database: "ok",
	})
}
