package entity

import "time"

// Estados de una recepción de mercancía.
const (
	ReceiptStatusPending   = "Pending"
	ReceiptStatusPartial   = "Partial"
	ReceiptStatusCompleted = "Completed"
	ReceiptStatusCancelled = "Cancelled"
)

// GoodsReceiptItem es una línea recibida contra una línea de la orden de compra.
// Invariante: QuantityReceived <= QuantityOrdered.
type GoodsReceiptItem struct {
	ID                  string
	PurchaseOrderItemID string
	PartID              string
	QuantityOrdered     int
	QuantityReceived    int
}

// GoodsReceipt registra la entrega física de los ítems de una orden de compra.
// Al pasar a Completed acredita el stock de cada repuesto exactamente una vez;
// la transición inversa no revierte stock (el material puede ya estar consumido,
// ver StockCredited).
type GoodsReceipt struct {
	ID                 string
	ReceiptNumber      string
	PurchaseOrderID    string
	SupplierID         string
	Status             string
	Items              []GoodsReceiptItem
	ReceivedDate       *time.Time
	ReceivedByUserID   string
	Notes              string
	StockCredited      bool // true una vez aplicado el crédito de inventario
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
