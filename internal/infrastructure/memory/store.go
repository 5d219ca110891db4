// Package memory implementa los repositorios sobre un almacén en memoria con transacciones.
// Run trabaja sobre una copia del estado y la publica solo si fn termina sin error.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

type state struct {
	products      map[string]entity.Product
	inventory     map[string]entity.Inventory // por product_id
	logs          []entity.InventoryLog
	orderItems    []entity.OrderItem
	inbound       map[string]entity.InboundOrder
	outbound      map[string]entity.OutboundOrder
	stocktaking   map[string]entity.StocktakingOrder
	stockItems    map[string][]entity.StocktakingItem // por stocktaking_id
	purchases     map[string]entity.PurchaseOrder
	purchaseItems map[string][]entity.PurchaseOrderItem // por purchase_order_id
	messages      []entity.Message
	users         map[string]entity.User // por username
}

func newState() *state {
	return &state{
		products:      map[string]entity.Product{},
		inventory:     map[string]entity.Inventory{},
		inbound:       map[string]entity.InboundOrder{},
		outbound:      map[string]entity.OutboundOrder{},
		stocktaking:   map[string]entity.StocktakingOrder{},
		stockItems:    map[string][]entity.StocktakingItem{},
		purchases:     map[string]entity.PurchaseOrder{},
		purchaseItems: map[string][]entity.PurchaseOrderItem{},
		users:         map[string]entity.User{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	c.logs = append([]entity.InventoryLog(nil), s.logs...)
	c.orderItems = append([]entity.OrderItem(nil), s.orderItems...)
	for k, v := range s.inbound {
		c.inbound[k] = v
	}
	for k, v := range s.outbound {
		c.outbound[k] = v
	}
	for k, v := range s.stocktaking {
		c.stocktaking[k] = v
	}
	for k, v := range s.stockItems {
		c.stockItems[k] = append([]entity.StocktakingItem(nil), v...)
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.purchaseItems {
		c.purchaseItems[k] = append([]entity.PurchaseOrderItem(nil), v...)
	}
	c.messages = append([]entity.Message(nil), s.messages...)
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store almacén en memoria. Las transacciones se serializan (equivalente a bloquear todas las filas).
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn sobre una copia del estado; si fn falla la copia se descarta (rollback).
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, reposFor(s, work)); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repos devuelve repositorios fuera de transacción (cada llamada toma el lock).
// No usarlos dentro de Run.
func (s *Store) Repos() repository.TxRepos {
	return reposFor(s, nil)
}

func reposFor(s *Store, tx *state) repository.TxRepos {
	b := base{s: s, tx: tx}
	return repository.TxRepos{
		Products:    &ProductRepo{b},
		Inventory:   &InventoryRepo{b},
		Logs:        &InventoryLogRepo{b},
		OrderItems:  &OrderItemRepo{b},
		Inbound:     &InboundOrderRepo{b},
		Outbound:    &OutboundOrderRepo{b},
		Stocktaking: &StocktakingRepo{b},
		Purchases:   &PurchaseOrderRepo{b},
	}
}

// Messages repositorio del buzón fuera de transacción.
func (s *Store) Messages() *MessageRepo {
	return &MessageRepo{base{s: s}}
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo {
	return &UserRepo{base{s: s}}
}

// Dashboard consultas del tablero.
func (s *Store) Dashboard() *DashboardRepo {
	return &DashboardRepo{base{s: s}}
}

// base resuelve el estado: el de la transacción, o el publicado bajo lock.
type base struct {
	s  *Store
	tx *state
}

func (b base) read(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	return fn(b.s.st)
}

func (b base) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return fn(b.s.st)
}

// ── Datos iniciales ─────────────────────────────────────────────────────────

// SeedProduct agrega un producto al catálogo (asigna ID si falta).
func (s *Store) SeedProduct(p entity.Product) *entity.Product {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	s.mu.Lock()
	s.st.products[p.ID] = p
	s.mu.Unlock()
	return &p
}

// SeedStock fija el stock inicial de un producto con su asiento de apertura,
// de modo que el libro siga cuadrando.
func (s *Store) SeedStock(productID string, quantity int64) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.st.inventory[productID]
	if !ok {
		inv = entity.Inventory{ID: uuid.New().String(), ProductID: productID, CreatedAt: now}
	}
	delta := quantity - inv.Quantity
	inv.Quantity = quantity
	inv.UpdatedAt = now
	s.st.inventory[productID] = inv
	s.st.logs = append(s.st.logs, entity.InventoryLog{
		ID:          uuid.New().String(),
		InventoryID: inv.ID,
		ProductID:   productID,
		Quantity:    delta,
		Requested:   delta,
		Kind:        entity.MovementInbound,
		OrderNo:     "APERTURA",
		Operator:    "system",
		CreatedAt:   now,
	})
}

// SeedUser registra un usuario activo con la contraseña hasheada (bcrypt).
func (s *Store) SeedUser(username, password, name, role string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.mu.Lock()
	s.st.users[username] = u
	s.mu.Unlock()
	return &u, nil
}
