package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del almacén del día más los últimos asientos del libro.
type DashboardSummaryDTO struct {
	ProductCount  int   `json:"product_count"`
	LowStockCount int   `json:"low_stock_count"` // productos en o bajo su umbral
	TodayInbound  int64 `json:"today_inbound"`   // unidades ingresadas hoy
	TodayOutbound int64 `json:"today_outbound"`  // unidades despachadas hoy

	RecentMovements []InventoryLogDTO `json:"recent_movements"`

	DateLabel string `json:"date_label"` // ej: "14 Febrero 2026"
}
