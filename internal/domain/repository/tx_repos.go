package repository

// TxRepos agrupa los repositorios atados a una misma transacción.
// Los servicios de movimiento solo reciben este struct y nunca hacen commit ni rollback.
type TxRepos struct {
	Products    ProductRepository
	Inventory   InventoryRepository
	Logs        InventoryLogRepository
	OrderItems  OrderItemRepository
	Inbound     InboundOrderRepository
	Outbound    OutboundOrderRepository
	Stocktaking StocktakingRepository
	Purchases   PurchaseOrderRepository
}
