package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve los indicadores del almacén del día.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (product_count, low_stock_count, today_inbound,
// today_outbound, recent_movements, date_label).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
