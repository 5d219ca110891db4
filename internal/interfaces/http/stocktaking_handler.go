package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StocktakingHandler inventarios físicos (protegido).
type StocktakingHandler struct {
	uc  *inventory.StocktakingUseCase
	log *logger.Logger
}

// NewStocktakingHandler construye el handler.
func NewStocktakingHandler(uc *inventory.StocktakingUseCase, log *logger.Logger) *StocktakingHandler {
	return &StocktakingHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear inventario físico
// @Description  Compara el conteo con el stock del sistema. Los sobrantes generan una entrada SURPLUS
// @Description  y los faltantes una salida SHORTAGE, todo en una transacción.
// @Tags         stocktaking-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStocktakingRequest  true  "items[product_id, actual_quantity]"
// @Success      201   {object}  dto.StocktakingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocktaking-orders [post]
func (h *StocktakingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStocktakingRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	lines := make([]inventory.StocktakingLineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, inventory.StocktakingLineInput{ProductID: it.ProductID, ActualQuantity: it.ActualQuantity})
	}
	res, err := h.uc.Create(c.Context(), inventory.CreateStocktakingInput{
		StocktakingDate: dateOrZero(in.StocktakingDate),
		Operator:        GetUsername(c),
		Remark:          in.Remark,
		Items:           lines,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stocktakingResponse(res))
}

// Import godoc
// @Summary      Importar planilla de conteo
// @Description  Archivo .xlsx o .csv con dos columnas: código de producto y cantidad contada.
// @Description  La primera fila puede ser encabezado. Los CSV pueden venir en UTF-8 o GB18030.
// @Tags         stocktaking-orders
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file              formData  file    true   "planilla de conteo"
// @Param        stocktaking_date  formData  string  false  "AAAA-MM-DD"
// @Param        remark            formData  string  false  "observación"
// @Success      201   {object}  dto.StocktakingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocktaking-orders/import [post]
func (h *StocktakingHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere el archivo en el campo file"})
	}
	var date time.Time
	if s := c.FormValue("stocktaking_date"); s != "" {
		date, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stocktaking_date debe tener formato AAAA-MM-DD"})
		}
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	res, err := h.uc.Import(c.Context(), inventory.ImportInput{
		Filename:        fh.Filename,
		Content:         f,
		StocktakingDate: date,
		Operator:        GetUsername(c),
		Remark:          c.FormValue("remark"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stocktakingResponse(res))
}

// Get godoc
// @Summary      Obtener inventario físico
// @Tags         stocktaking-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del inventario"
// @Success      200  {object}  dto.StocktakingDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocktaking-orders/{id} [get]
func (h *StocktakingHandler) Get(c *fiber.Ctx) error {
	order, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewStocktakingDTO(order))
}

// Delete godoc
// @Summary      Eliminar inventario físico
// @Description  Falla con CONFLICT mientras existan entradas o salidas generadas por el inventario.
// @Tags         stocktaking-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del inventario"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocktaking-orders/{id} [delete]
func (h *StocktakingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar inventario físico a Excel
// @Tags         stocktaking-orders
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocktaking-orders/{id}/export [get]
func (h *StocktakingHandler) Export(c *fiber.Ctx) error {
	out, orderNo, err := h.uc.Export(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, out, xlsxContentType, orderNo+".xlsx")
}

func stocktakingResponse(res *inventory.StocktakingResult) dto.StocktakingResponse {
	out := dto.StocktakingResponse{
		Stocktaking:       dto.NewStocktakingDTO(res.Order),
		AutoCreatedOrders: res.AutoCreated,
		Message:           res.Message,
	}
	if out.AutoCreatedOrders == nil {
		out.AutoCreatedOrders = []string{}
	}
	if res.Inbound != nil {
		o := dto.NewInboundOrderDTO(res.Inbound.Order, res.Inbound.Items)
		out.InboundOrder = &o
	}
	if res.Outbound != nil {
		o := dto.NewOutboundOrderDTO(res.Outbound.Order, res.Outbound.Items)
		out.OutboundOrder = &o
	}
	return out
}
