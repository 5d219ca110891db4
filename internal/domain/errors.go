package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError entrada rechazada antes de cualquier escritura (lista vacía, productos duplicados, operador faltante).
type ValidationError struct {
	Message string
}

// NewValidationError construye un ValidationError con mensaje formateado.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError recurso referenciado inexistente (orden, producto, fila de inventario).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError la salida dejaría el stock en negativo.
// Lleva producto, cantidad actual y cantidad solicitada para diagnóstico del operador.
type InsufficientStockError struct {
	ProductID string
	Current   int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Current, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ConflictError la operación está bloqueada por documentos dependientes.
type ConflictError struct {
	Reason   string
	Blocking []string
}

func (e *ConflictError) Error() string {
	if len(e.Blocking) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Blocking, ", "))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
