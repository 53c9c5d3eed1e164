package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/xiaot623/adgenie/internal/domain"
)

// GetSummary returns the interaction total and the per-context distribution.
// GET /metrics/summary
func (h *Handler) GetSummary(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.service.Summary(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to compute metrics summary")
		return c.JSON(http.StatusInternalServerError, domain.ErrorDetail{Detail: "Error interno del servidor al calcular las métricas."})
	}

	return c.JSON(http.StatusOK, summary)
}

// GetStatus returns service uptime and user count.
// GET /metrics/status
func (h *Handler) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()

	status, err := h.service.Status(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to compute service status")
		return c.JSON(http.StatusInternalServerError, domain.ErrorDetail{Detail: "Error interno del servidor al calcular el estado."})
	}

	return c.JSON(http.StatusOK, status)
}
