// Package analytics contiene los casos de uso de lectura para el tablero del almacén.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const dashboardRecentMovements = 10 // asientos en el widget del dashboard

// DashboardUseCase genera el resumen del día.
//
// Fuente de datos: repositorios de solo lectura; no abre transacción.
type DashboardUseCase struct {
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	logs      repository.InventoryLogRepository
	dashboard repository.DashboardRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	logs repository.InventoryLogRepository,
	dashboard repository.DashboardRepository,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, inventory: inventory, logs: logs, dashboard: dashboard, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo (errgroup): total de productos, stock bajo,
// entradas de hoy, salidas de hoy y últimos asientos.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		out    dto.DashboardSummaryDTO
		recent []*entity.InventoryLog
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.products.Count(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		out.ProductCount = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.inventory.CountLowStock(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		out.LowStockCount = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.dashboard.SumMovedSince(ctx, string(entity.MovementInbound), todayStart)
		if err != nil {
			return fmt.Errorf("dashboard: entradas de hoy: %w", err)
		}
		out.TodayInbound = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.dashboard.SumMovedSince(ctx, string(entity.MovementOutbound), todayStart)
		if err != nil {
			return fmt.Errorf("dashboard: salidas de hoy: %w", err)
		}
		out.TodayOutbound = n
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = uc.logs.ListRecent(ctx, dashboardRecentMovements)
		if err != nil {
			return fmt.Errorf("dashboard: últimos movimientos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.RecentMovements = make([]dto.InventoryLogDTO, 0, len(recent))
	for _, l := range recent {
		out.RecentMovements = append(out.RecentMovements, dto.NewInventoryLogDTO(l))
	}
	out.DateLabel = dayLabel(now)
	return &out, nil
}

// dayLabel devuelve una etiqueta legible del día, ej: "14 Febrero 2026".
func dayLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}
