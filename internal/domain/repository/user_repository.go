package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (solo lo que usa auth).
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
