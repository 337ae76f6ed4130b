package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusDraft             = "Draft"
	POStatusPendingApproval   = "PendingApproval"
	POStatusApproved          = "Approved"
	POStatusPartiallyReceived = "PartiallyReceived"
	POStatusFullyReceived     = "FullyReceived"
	POStatusClosed            = "Closed"
	POStatusCancelled         = "Cancelled"
)

// PurchaseOrderItem es una línea de una orden de compra.
// Invariante: TotalPrice == Quantity * UnitPrice (validado al guardar).
type PurchaseOrderItem struct {
	ID          string
	Description string
	PartID      string // opcional
	Quantity    int    // >= 1
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// PurchaseOrder representa un compromiso de compra con un proveedor.
// SubTotal, TaxAmount y GrandTotal son derivados: se recalculan en cada escritura
// desde la lista de ítems vigente; el caller no puede fijarlos directamente.
type PurchaseOrder struct {
	ID                    string
	OrderNumber           string
	SupplierID            string
	PurchaseRequisitionID string // opcional: requisición de origen
	Status                string
	Items                 []PurchaseOrderItem
	SubTotal              decimal.Decimal
	TaxAmount             decimal.Decimal
	ShippingCost          decimal.Decimal
	GrandTotal            decimal.Decimal
	ExpectedDeliveryDate  *time.Time
	Notes                 string
	CreatedByUserID       string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Deletable indica si la orden puede eliminarse: una vez que existe recepción
// de mercancía (parcial o total) el documento queda protegido.
func (po *PurchaseOrder) Deletable() bool {
	return po.Status != POStatusPartiallyReceived && po.Status != POStatusFullyReceived
}
