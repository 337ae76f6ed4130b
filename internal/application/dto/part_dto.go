package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level,omitempty"`
}

// UpdatePartRequest body para PUT /api/parts/:id. No incluye stock: el stock
// solo se muta vía el ajuste de inventario.
type UpdatePartRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost,omitempty"`
	MinStockLevel int             `json:"min_stock_level,omitempty"`
	IsActive      *bool           `json:"is_active,omitempty"`
}

// Ajustes manuales de stock.
const (
	StockAdjustmentAdd    = "ADD"
	StockAdjustmentRemove = "REMOVE"
)

// AdjustStockRequest body para POST /api/parts/:id/adjust-stock.
// Reason se registra en el log de la operación; no se persiste.
type AdjustStockRequest struct {
	Adjustment string `json:"adjustment"` // ADD | REMOVE
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason,omitempty"`
}

// PartResponse representación de un repuesto en respuestas.
type PartResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
