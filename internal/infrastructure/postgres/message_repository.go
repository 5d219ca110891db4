package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo buzón de mensajes del sistema. Se escribe fuera de las transacciones de inventario.
type MessageRepo struct {
	pool *pgxpool.Pool
}

// NewMessageRepository construye el adaptador.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Create inserta un mensaje.
func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) error {
	query := `
		INSERT INTO messages (id, kind, title, content, product_id, order_no, operator, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Kind, m.Title, m.Content, m.ProductID, m.OrderNo, m.Operator, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}
