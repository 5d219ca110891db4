package repository

import (
	"context"
	"time"
)

// DashboardRepository consultas de solo lectura para el resumen del almacén.
type DashboardRepository interface {
	// SumMovedSince suma |delta| de los asientos del tipo dado desde `since`.
	SumMovedSince(ctx context.Context, kind string, since time.Time) (int64, error)
}
