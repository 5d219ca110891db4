package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo (DIP).
// El motor de inventario nunca escribe productos.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Count(ctx context.Context) (int, error)
}
