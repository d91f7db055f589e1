package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizador-api/internal/application/analytics"
	"github.com/jhoicas/cotizador-api/internal/application/dto"
)

// DashboardHandler maneja el resumen del dashboard (protegido).
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary GET /api/dashboard/summary
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	resp, err := h.uc.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
