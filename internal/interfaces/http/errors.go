package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// respondError traduce los errores de dominio a la respuesta HTTP.
// Lo que no es de dominio se registra y se responde 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var (
		validation   *domain.ValidationError
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientStockError
		conflict     *domain.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
			Details: fiber.Map{
				"product_id": insufficient.ProductID,
				"current":    insufficient.Current,
				"requested":  insufficient.Requested,
			},
		})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "CONFLICT",
			Message: conflict.Error(),
			Details: fiber.Map{"blocking": conflict.Blocking},
		})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFound.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		// dos transacciones crearon a la vez la primera fila de inventario; reintentar basta
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "operación concurrente, reintente"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
