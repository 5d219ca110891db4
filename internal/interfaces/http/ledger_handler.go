package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// LedgerHandler ficha de stock de un producto (protegido, solo lectura).
type LedgerHandler struct {
	query *inventory.LedgerQuery
	log   *logger.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(query *inventory.LedgerQuery, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{query: query, log: log}
}

// ListLogs godoc
// @Summary      Ficha de stock
// @Description  Asientos del libro del producto, más recientes primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "máximo 100 (por defecto 20)"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {object}  dto.InventoryLogListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/logs [get]
func (h *LedgerHandler) ListLogs(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit y offset deben ser enteros"})
	}
	page.DefaultPage()
	if e := validateStruct(&page); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	logs, err := h.query.ListLogs(c.Context(), c.Params("productId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	items := make([]dto.InventoryLogDTO, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.NewInventoryLogDTO(l))
	}
	return c.JSON(dto.InventoryLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Verify godoc
// @Summary      Verificar el libro del producto
// @Description  Compara la suma de los asientos con el stock actual.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  inventory.ConservationReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/verify [get]
func (h *LedgerHandler) Verify(c *fiber.Ctx) error {
	report, err := h.query.Verify(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !report.Conserved {
		h.log.Warn().
			Str("product_id", report.ProductID).
			Int64("quantity", report.Quantity).
			Int64("log_sum", report.LogSum).
			Msg("el libro no cuadra con el stock")
	}
	return c.JSON(report)
}

// Export godoc
// @Summary      Exportar ficha de stock a Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/logs/export [get]
func (h *LedgerHandler) Export(c *fiber.Ctx) error {
	out, code, err := h.query.ExportLogsXLSX(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, out, xlsxContentType, "ficha-"+code+".xlsx")
}
