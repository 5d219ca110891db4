package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// InventoryRepository define el puerto para el stock por producto.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). nil si no existe.
	GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error)
	Create(ctx context.Context, inv *entity.Inventory) error
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	// CountLowStock cuenta productos con umbral activo y cantidad <= umbral.
	CountLowStock(ctx context.Context) (int, error)
}

// InventoryLogRepository define el puerto del libro de inventario (solo inserción).
type InventoryLogRepository interface {
	Create(ctx context.Context, log *entity.InventoryLog) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLog, error)
	// SumByProduct suma los deltas aplicados del producto; devuelve también la cantidad de asientos.
	SumByProduct(ctx context.Context, productID string) (sum int64, entries int, err error)
	ListRecent(ctx context.Context, limit int) ([]*entity.InventoryLog, error)
}
