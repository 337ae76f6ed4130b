package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una requisición de compra.
const (
	RequisitionStatusDraft           = "Draft"
	RequisitionStatusPendingApproval = "PendingApproval"
	RequisitionStatusApproved        = "Approved"
	RequisitionStatusRejected        = "Rejected"
	RequisitionStatusOrdered         = "Ordered" // fijado solo al crear una orden de compra desde la requisición
	RequisitionStatusCancelled       = "Cancelled"
)

// PurchaseRequisitionItem es una línea de una requisición: qué se pide y cuánto.
// PartID es opcional (puede pedirse algo que aún no existe en el catálogo).
type PurchaseRequisitionItem struct {
	ID                    string
	Description           string
	PartID                string
	Quantity              int             // >= 1
	EstimatedPricePerUnit decimal.Decimal // cero si no se conoce
}

// PurchaseRequisition representa una solicitud interna de compra de repuestos
// o insumos, precursora de una orden de compra.
// TotalEstimatedValue siempre se recalcula desde los ítems; nunca lo fija el caller.
type PurchaseRequisition struct {
	ID                  string
	RequestedByUserID   string
	Department          string
	Status              string
	Items               []PurchaseRequisitionItem
	TotalEstimatedValue decimal.Decimal
	Notes               string
	ApprovedByUserID    string
	ApprovedDate        *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ItemsLocked indica si los ítems ya no admiten edición
// (el documento salió de Draft/PendingApproval).
func (r *PurchaseRequisition) ItemsLocked() bool {
	return r.Status != RequisitionStatusDraft && r.Status != RequisitionStatusPendingApproval
}

// ComputeTotalEstimatedValue recalcula el valor estimado total desde los ítems.
func (r *PurchaseRequisition) ComputeTotalEstimatedValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.EstimatedPricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
