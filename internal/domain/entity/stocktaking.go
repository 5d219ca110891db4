package entity

import "time"

// StocktakingOrder inventario físico (conteo cíclico).
// No se puede borrar mientras existan órdenes de entrada/salida que lo referencien.
type StocktakingOrder struct {
	ID              string
	OrderNo         string
	StocktakingDate time.Time
	Operator        string
	Remark          string
	TotalItems      int
	CreatedAt       time.Time
	Items           []*StocktakingItem
}

// StocktakingItem línea contada; guarda una copia del producto al momento del conteo.
type StocktakingItem struct {
	ID             string
	StocktakingID  string
	ProductID      string
	ProductName    string
	ProductCode    string
	ProductSpec    string
	Unit           string
	SystemQuantity int64
	ActualQuantity int64
}

// Difference cantidad contada menos cantidad del sistema.
func (i *StocktakingItem) Difference() int64 {
	return i.ActualQuantity - i.SystemQuantity
}
