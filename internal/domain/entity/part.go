package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del taller (SKU del catálogo).
// StockQuantity nunca es negativo y solo se muta a través del caso de uso de
// inventario (ajustes, recepciones de compra y consumo en órdenes), nunca por
// asignación directa desde otros stores.
type Part struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // costo de compra (puede ser cero si no se conoce)
	StockQuantity int
	MinStockLevel int // punto de reorden sugerido
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
