package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MessageRepository buzón de notificaciones (lo escribe el worker).
type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
}
