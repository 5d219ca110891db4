package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/purchase"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// PurchaseHandler órdenes de compra (protegido).
type PurchaseHandler struct {
	uc  *purchase.BridgeUseCase
	log *logger.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.BridgeUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier, items"
// @Success      201   {object}  dto.PurchaseOrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	lines := make([]purchase.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, purchase.LineInput{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	order, err := h.uc.Create(c.Context(), purchase.CreateInput{
		Supplier: in.Supplier,
		Operator: GetUsername(c),
		Remark:   in.Remark,
		Items:    lines,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseOrderDTO(order))
}

// Confirm godoc
// @Summary      Confirmar orden de compra
// @Description  Pasa la compra a CONFIRMED y genera la orden de entrada PURCHASE en la misma transacción.
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la compra"
// @Success      200  {object}  dto.ConfirmPurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/confirm [post]
func (h *PurchaseHandler) Confirm(c *fiber.Ctx) error {
	res, err := h.uc.Confirm(c.Context(), c.Params("id"), GetUsername(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ConfirmPurchaseResponse{
		PurchaseOrder: dto.NewPurchaseOrderDTO(res.Order),
		InboundOrder:  dto.NewInboundOrderDTO(res.Inbound.Order, res.Inbound.Items),
	})
}

// Delete godoc
// @Summary      Eliminar orden de compra
// @Description  Si estaba confirmada revierte antes las entradas que generó.
// @Tags         purchase-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la compra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
