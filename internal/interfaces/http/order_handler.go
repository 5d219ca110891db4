package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// OrderHandler órdenes de entrada y salida (protegido).
type OrderHandler struct {
	inbound  *inventory.InboundUseCase
	outbound *inventory.OutboundUseCase
	log      *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(inbound *inventory.InboundUseCase, outbound *inventory.OutboundUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{inbound: inbound, outbound: outbound, log: log}
}

// CreateInbound godoc
// @Summary      Crear orden de entrada
// @Description  Registra la orden, sus líneas y suma cada línea al stock (asiento INBOUND).
// @Tags         inbound-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInboundRequest  true  "type, items[product_id, quantity, unit_price]"
// @Success      201   {object}  dto.OrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inbound-orders [post]
func (h *OrderHandler) CreateInbound(c *fiber.Ctx) error {
	var in dto.CreateInboundRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	res, err := h.inbound.Create(c.Context(), inventory.CreateInboundInput{
		Type:      entity.InboundType(in.Type),
		Operator:  GetUsername(c),
		Remark:    in.Remark,
		Items:     toOrderLines(in.Items),
		OrderDate: dateOrZero(in.OrderDate),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInboundOrderDTO(res.Order, res.Items))
}

// GetInbound godoc
// @Summary      Obtener orden de entrada
// @Tags         inbound-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbound-orders/{id} [get]
func (h *OrderHandler) GetInbound(c *fiber.Ctx) error {
	res, err := h.inbound.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewInboundOrderDTO(res.Order, res.Items))
}

// DeleteInbound godoc
// @Summary      Eliminar orden de entrada
// @Description  Revierte cada línea (asiento INBOUND_REVERSAL, recortado a cero) y borra la orden.
// @Tags         inbound-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbound-orders/{id} [delete]
func (h *OrderHandler) DeleteInbound(c *fiber.Ctx) error {
	if err := h.inbound.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// InboundPDF godoc
// @Summary      PDF de la orden de entrada
// @Tags         inbound-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbound-orders/{id}/pdf [get]
func (h *OrderHandler) InboundPDF(c *fiber.Ctx) error {
	out, orderNo, err := h.inbound.RenderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, out, "application/pdf", orderNo+".pdf")
}

// CreateOutbound godoc
// @Summary      Crear orden de salida
// @Description  Verifica el stock de todas las líneas antes de escribir; si alcanza, descuenta cada línea (asiento OUTBOUND).
// @Description  Con enable_stock_alert (por defecto true) avisa los productos que quedan en o bajo su umbral.
// @Tags         outbound-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOutboundRequest  true  "type, items, enable_stock_alert"
// @Success      201   {object}  dto.OutboundOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/outbound-orders [post]
func (h *OrderHandler) CreateOutbound(c *fiber.Ctx) error {
	var in dto.CreateOutboundRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	res, err := h.outbound.Create(c.Context(), inventory.CreateOutboundInput{
		Type:             entity.OutboundType(in.Type),
		Operator:         GetUsername(c),
		Remark:           in.Remark,
		Items:            toOrderLines(in.Items),
		OrderDate:        dateOrZero(in.OrderDate),
		EnableStockAlert: in.EnableStockAlert,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OutboundOrderResponse{
		OrderDTO:           dto.NewOutboundOrderDTO(res.Order, res.Items),
		UpdatedInventories: dto.NewInventorySnapshotDTOs(res.UpdatedInventories),
		EnableStockAlert:   res.EnableStockAlert,
	})
}

// GetOutbound godoc
// @Summary      Obtener orden de salida
// @Tags         outbound-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound-orders/{id} [get]
func (h *OrderHandler) GetOutbound(c *fiber.Ctx) error {
	res, err := h.outbound.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewOutboundOrderDTO(res.Order, res.Items))
}

// DeleteOutbound godoc
// @Summary      Eliminar orden de salida
// @Description  Devuelve al stock cada línea (asiento OUTBOUND_REVERSAL) y borra la orden.
// @Tags         outbound-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound-orders/{id} [delete]
func (h *OrderHandler) DeleteOutbound(c *fiber.Ctx) error {
	if err := h.outbound.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OutboundPDF godoc
// @Summary      PDF de la orden de salida
// @Tags         outbound-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound-orders/{id}/pdf [get]
func (h *OrderHandler) OutboundPDF(c *fiber.Ctx) error {
	out, orderNo, err := h.outbound.RenderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, out, "application/pdf", orderNo+".pdf")
}

func toOrderLines(items []dto.OrderLineRequest) []inventory.OrderLineInput {
	out := make([]inventory.OrderLineInput, 0, len(items))
	for _, it := range items {
		out = append(out, inventory.OrderLineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Unit:      it.Unit,
		})
	}
	return out
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// sendFile responde un archivo descargable.
func sendFile(c *fiber.Ctx, body []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
