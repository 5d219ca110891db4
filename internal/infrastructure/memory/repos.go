package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.InventoryRepository     = (*InventoryRepo)(nil)
	_ repository.InventoryLogRepository  = (*InventoryLogRepo)(nil)
	_ repository.OrderItemRepository     = (*OrderItemRepo)(nil)
	_ repository.InboundOrderRepository  = (*InboundOrderRepo)(nil)
	_ repository.OutboundOrderRepository = (*OutboundOrderRepo)(nil)
	_ repository.StocktakingRepository   = (*StocktakingRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.MessageRepository       = (*MessageRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.DashboardRepository     = (*DashboardRepo)(nil)
)

// ── Productos ───────────────────────────────────────────────────────────────

type ProductRepo struct{ base }

func (r *ProductRepo) GetByID(_ context.Context, id string) (out *entity.Product, err error) {
	err = r.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (out *entity.Product, err error) {
	err = r.read(func(st *state) error {
		for _, p := range st.products {
			if p.Code == code {
				p := p
				out = &p
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Count(_ context.Context) (n int, err error) {
	err = r.read(func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}

// ── Inventario ──────────────────────────────────────────────────────────────

type InventoryRepo struct{ base }

func (r *InventoryRepo) GetByProduct(_ context.Context, productID string) (out *entity.Inventory, err error) {
	err = r.read(func(st *state) error {
		if inv, ok := st.inventory[productID]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

// GetForUpdate la transacción ya tiene el almacén en exclusiva.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	return r.GetByProduct(ctx, productID)
}

func (r *InventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	return r.write(func(st *state) error {
		if _, ok := st.inventory[inv.ProductID]; ok {
			return domain.ErrDuplicate
		}
		st.inventory[inv.ProductID] = *inv
		return nil
	})
}

func (r *InventoryRepo) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	return r.write(func(st *state) error {
		for pid, inv := range st.inventory {
			if inv.ID == id {
				inv.Quantity = quantity
				inv.UpdatedAt = time.Now()
				st.inventory[pid] = inv
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *InventoryRepo) CountLowStock(_ context.Context) (n int, err error) {
	err = r.read(func(st *state) error {
		for pid, inv := range st.inventory {
			if p, ok := st.products[pid]; ok && p.HasAlert(inv.Quantity) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── Libro ───────────────────────────────────────────────────────────────────

type InventoryLogRepo struct{ base }

func (r *InventoryLogRepo) Create(_ context.Context, l *entity.InventoryLog) error {
	return r.write(func(st *state) error {
		st.logs = append(st.logs, *l)
		return nil
	})
}

// ListByProduct más recientes primero.
func (r *InventoryLogRepo) ListByProduct(_ context.Context, productID string, limit, offset int) (out []*entity.InventoryLog, err error) {
	err = r.read(func(st *state) error {
		skipped := 0
		for i := len(st.logs) - 1; i >= 0 && len(out) < limit; i-- {
			l := st.logs[i]
			if l.ProductID != productID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

func (r *InventoryLogRepo) SumByProduct(_ context.Context, productID string) (sum int64, entries int, err error) {
	err = r.read(func(st *state) error {
		for _, l := range st.logs {
			if l.ProductID == productID {
				sum += l.Quantity
				entries++
			}
		}
		return nil
	})
	return sum, entries, err
}

func (r *InventoryLogRepo) ListRecent(_ context.Context, limit int) (out []*entity.InventoryLog, err error) {
	err = r.read(func(st *state) error {
		for i := len(st.logs) - 1; i >= 0 && len(out) < limit; i-- {
			l := st.logs[i]
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

// ── Líneas de orden ─────────────────────────────────────────────────────────

type OrderItemRepo struct{ base }

func (r *OrderItemRepo) CreateBatch(_ context.Context, items []*entity.OrderItem) error {
	return r.write(func(st *state) error {
		for _, it := range items {
			st.orderItems = append(st.orderItems, *it)
		}
		return nil
	})
}

func sameOwner(a, b entity.OrderRef) bool {
	return a.Kind() == b.Kind() && a.OrderID() == b.OrderID()
}

func (r *OrderItemRepo) ListByOrder(_ context.Context, owner entity.OrderRef) (out []*entity.OrderItem, err error) {
	err = r.read(func(st *state) error {
		for _, it := range st.orderItems {
			if sameOwner(it.Owner, owner) {
				it := it
				out = append(out, &it)
			}
		}
		return nil
	})
	return out, err
}

func (r *OrderItemRepo) DeleteByOrder(_ context.Context, owner entity.OrderRef) error {
	return r.write(func(st *state) error {
		kept := st.orderItems[:0:0]
		for _, it := range st.orderItems {
			if !sameOwner(it.Owner, owner) {
				kept = append(kept, it)
			}
		}
		st.orderItems = kept
		return nil
	})
}

// ── Órdenes de entrada / salida ─────────────────────────────────────────────

type InboundOrderRepo struct{ base }

func (r *InboundOrderRepo) Create(_ context.Context, o *entity.InboundOrder) error {
	return r.write(func(st *state) error {
		for _, existing := range st.inbound {
			if existing.OrderNo == o.OrderNo {
				return domain.ErrDuplicate
			}
		}
		st.inbound[o.ID] = *o
		return nil
	})
}

func (r *InboundOrderRepo) GetByID(_ context.Context, id string) (out *entity.InboundOrder, err error) {
	err = r.read(func(st *state) error {
		if o, ok := st.inbound[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *InboundOrderRepo) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		delete(st.inbound, id)
		return nil
	})
}

func (r *InboundOrderRepo) ListByRelatedOrder(_ context.Context, relatedID string) (out []*entity.InboundOrder, err error) {
	err = r.read(func(st *state) error {
		for _, o := range st.inbound {
			if o.RelatedOrderID == relatedID {
				o := o
				out = append(out, &o)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].OrderNo < out[j].OrderNo })
		return nil
	})
	return out, err
}

type OutboundOrderRepo struct{ base }

func (r *OutboundOrderRepo) Create(_ context.Context, o *entity.OutboundOrder) error {
	return r.write(func(st *state) error {
		for _, existing := range st.outbound {
			if existing.OrderNo == o.OrderNo {
				return domain.ErrDuplicate
			}
		}
		st.outbound[o.ID] = *o
		return nil
	})
}

func (r *OutboundOrderRepo) GetByID(_ context.Context, id string) (out *entity.OutboundOrder, err error) {
	err = r.read(func(st *state) error {
		if o, ok := st.outbound[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OutboundOrderRepo) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		delete(st.outbound, id)
		return nil
	})
}

func (r *OutboundOrderRepo) ListByRelatedOrder(_ context.Context, relatedID string) (out []*entity.OutboundOrder, err error) {
	err = r.read(func(st *state) error {
		for _, o := range st.outbound {
			if o.RelatedOrderID == relatedID {
				o := o
				out = append(out, &o)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].OrderNo < out[j].OrderNo })
		return nil
	})
	return out, err
}

// ── Inventario físico ───────────────────────────────────────────────────────

type StocktakingRepo struct{ base }

func (r *StocktakingRepo) Create(_ context.Context, o *entity.StocktakingOrder) error {
	return r.write(func(st *state) error {
		c := *o
		c.Items = nil
		st.stocktaking[o.ID] = c
		return nil
	})
}

func (r *StocktakingRepo) CreateItem(_ context.Context, it *entity.StocktakingItem) error {
	return r.write(func(st *state) error {
		if _, ok := st.stocktaking[it.StocktakingID]; !ok {
			return domain.ErrNotFound
		}
		for _, existing := range st.stockItems[it.StocktakingID] {
			if existing.ProductID == it.ProductID {
				return domain.ErrDuplicate
			}
		}
		st.stockItems[it.StocktakingID] = append(st.stockItems[it.StocktakingID], *it)
		return nil
	})
}

func (r *StocktakingRepo) GetByID(_ context.Context, id string) (out *entity.StocktakingOrder, err error) {
	err = r.read(func(st *state) error {
		o, ok := st.stocktaking[id]
		if !ok {
			return nil
		}
		for _, it := range st.stockItems[id] {
			it := it
			o.Items = append(o.Items, &it)
		}
		out = &o
		return nil
	})
	return out, err
}

func (r *StocktakingRepo) DeleteItems(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		delete(st.stockItems, id)
		return nil
	})
}

func (r *StocktakingRepo) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		delete(st.stocktaking, id)
		delete(st.stockItems, id)
		return nil
	})
}

// ── Compras ─────────────────────────────────────────────────────────────────

type PurchaseOrderRepo struct{ base }

func (r *PurchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	return r.write(func(st *state) error {
		c := *o
		c.Items = nil
		st.purchases[o.ID] = c
		items := make([]entity.PurchaseOrderItem, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, *it)
		}
		st.purchaseItems[o.ID] = items
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (out *entity.PurchaseOrder, err error) {
	err = r.read(func(st *state) error {
		o, ok := st.purchases[id]
		if !ok {
			return nil
		}
		for _, it := range st.purchaseItems[id] {
			it := it
			o.Items = append(o.Items, &it)
		}
		out = &o
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, o *entity.PurchaseOrder) error {
	return r.write(func(st *state) error {
		existing, ok := st.purchases[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		existing.Status = o.Status
		existing.ConfirmedAt = o.ConfirmedAt
		st.purchases[o.ID] = existing
		return nil
	})
}

func (r *PurchaseOrderRepo) DeleteItems(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		delete(st.purchaseItems, id)
		return nil
	})
}

func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		delete(st.purchases, id)
		return nil
	})
}

// ── Mensajes, usuarios, tablero ─────────────────────────────────────────────

type MessageRepo struct{ base }

func (r *MessageRepo) Create(_ context.Context, m *entity.Message) error {
	return r.write(func(st *state) error {
		st.messages = append(st.messages, *m)
		return nil
	})
}

// List devuelve todos los mensajes en orden de llegada.
func (r *MessageRepo) List() []entity.Message {
	var out []entity.Message
	_ = r.read(func(st *state) error {
		out = append(out, st.messages...)
		return nil
	})
	return out
}

type UserRepo struct{ base }

func (r *UserRepo) GetByUsername(_ context.Context, username string) (out *entity.User, err error) {
	err = r.read(func(st *state) error {
		if u, ok := st.users[username]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

type DashboardRepo struct{ base }

func (r *DashboardRepo) SumMovedSince(_ context.Context, kind string, since time.Time) (sum int64, err error) {
	err = r.read(func(st *state) error {
		for _, l := range st.logs {
			if string(l.Kind) != kind || l.CreatedAt.Before(since) {
				continue
			}
			if l.Quantity < 0 {
				sum -= l.Quantity
			} else {
				sum += l.Quantity
			}
		}
		return nil
	})
	return sum, err
}
