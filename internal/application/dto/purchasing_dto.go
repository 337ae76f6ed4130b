package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Requisiciones ─────────────────────────────────────────────────────────────

// RequisitionItemRequest línea de una requisición de compra.
type RequisitionItemRequest struct {
	Description           string          `json:"description"`
	PartID                string          `json:"part_id,omitempty"`
	Quantity              int             `json:"quantity"`
	EstimatedPricePerUnit decimal.Decimal `json:"estimated_price_per_unit,omitempty"`
}

// CreateRequisitionRequest body para POST /api/requisitions.
type CreateRequisitionRequest struct {
	Department string                   `json:"department,omitempty"`
	Notes      string                   `json:"notes,omitempty"`
	Items      []RequisitionItemRequest `json:"items"`
}

// UpdateRequisitionRequest body para PUT /api/requisitions/:id.
// El total estimado siempre se recalcula desde los ítems; cualquier total
// enviado por el caller se ignora.
type UpdateRequisitionRequest struct {
	Department string                   `json:"department,omitempty"`
	Notes      string                   `json:"notes,omitempty"`
	Items      []RequisitionItemRequest `json:"items"`
}

// TransitionRequisitionRequest body para POST /api/requisitions/:id/status.
type TransitionRequisitionRequest struct {
	Status string `json:"status"`
}

// RequisitionItemResponse línea en respuestas.
type RequisitionItemResponse struct {
	ID                    string          `json:"id"`
	Description           string          `json:"description"`
	PartID                string          `json:"part_id,omitempty"`
	Quantity              int             `json:"quantity"`
	EstimatedPricePerUnit decimal.Decimal `json:"estimated_price_per_unit"`
}

// RequisitionResponse representación completa de una requisición.
type RequisitionResponse struct {
	ID                  string                    `json:"id"`
	RequestedByUserID   string                    `json:"requested_by_user_id"`
	Department          string                    `json:"department,omitempty"`
	Status              string                    `json:"status"`
	Items               []RequisitionItemResponse `json:"items"`
	TotalEstimatedValue decimal.Decimal           `json:"total_estimated_value"`
	Notes               string                    `json:"notes,omitempty"`
	ApprovedByUserID    string                    `json:"approved_by_user_id,omitempty"`
	ApprovedDate        *time.Time                `json:"approved_date,omitempty"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

// PurchaseOrderItemRequest línea de una orden de compra. TotalPrice es
// opcional: vacío se calcula como Quantity * UnitPrice; si viene, debe
// coincidir exactamente (se valida). ID es opcional: en una actualización
// conserva la identidad de la línea (las recepciones referencian líneas por
// su id); vacío genera una línea nueva.
type PurchaseOrderItemRequest struct {
	ID          string           `json:"id,omitempty"`
	Description string           `json:"description"`
	PartID      string           `json:"part_id,omitempty"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	TotalPrice  *decimal.Decimal `json:"total_price,omitempty"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
// TaxAmount nil aplica la tasa plana configurada para compras.
type CreatePurchaseOrderRequest struct {
	SupplierID            string                     `json:"supplier_id"`
	PurchaseRequisitionID string                     `json:"purchase_requisition_id,omitempty"`
	Status                string                     `json:"status,omitempty"`
	Items                 []PurchaseOrderItemRequest `json:"items"`
	TaxAmount             *decimal.Decimal           `json:"tax_amount,omitempty"`
	ShippingCost          decimal.Decimal            `json:"shipping_cost,omitempty"`
	ExpectedDeliveryDate  *time.Time                 `json:"expected_delivery_date,omitempty"`
	Notes                 string                     `json:"notes,omitempty"`
}

// UpdatePurchaseOrderRequest body para PUT /api/purchase-orders/:id.
// Subtotal y total siempre se rederivan de la lista de ítems vigente.
type UpdatePurchaseOrderRequest struct {
	Status               string                     `json:"status,omitempty"`
	Items                []PurchaseOrderItemRequest `json:"items"`
	TaxAmount            *decimal.Decimal           `json:"tax_amount,omitempty"`
	ShippingCost         decimal.Decimal            `json:"shipping_cost,omitempty"`
	ExpectedDeliveryDate *time.Time                 `json:"expected_delivery_date,omitempty"`
	Notes                string                     `json:"notes,omitempty"`
}

// PurchaseOrderItemResponse línea en respuestas.
type PurchaseOrderItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	PartID      string          `json:"part_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse representación completa de una orden de compra.
type PurchaseOrderResponse struct {
	ID                    string                      `json:"id"`
	OrderNumber           string                      `json:"order_number"`
	SupplierID            string                      `json:"supplier_id"`
	PurchaseRequisitionID string                      `json:"purchase_requisition_id,omitempty"`
	Status                string                      `json:"status"`
	Items                 []PurchaseOrderItemResponse `json:"items"`
	SubTotal              decimal.Decimal             `json:"sub_total"`
	TaxAmount             decimal.Decimal             `json:"tax_amount"`
	ShippingCost          decimal.Decimal             `json:"shipping_cost"`
	GrandTotal            decimal.Decimal             `json:"grand_total"`
	ExpectedDeliveryDate  *time.Time                  `json:"expected_delivery_date,omitempty"`
	Notes                 string                      `json:"notes,omitempty"`
	CreatedAt             time.Time                   `json:"created_at"`
	UpdatedAt             time.Time                   `json:"updated_at"`
}

// ── Recepciones de mercancía ──────────────────────────────────────────────────

// GoodsReceiptItemRequest línea recibida contra una línea de la orden.
type GoodsReceiptItemRequest struct {
	PurchaseOrderItemID string `json:"purchase_order_item_id"`
	PartID              string `json:"part_id"`
	QuantityReceived    int    `json:"quantity_received"`
}

// CreateGoodsReceiptRequest body para POST /api/goods-receipts.
type CreateGoodsReceiptRequest struct {
	PurchaseOrderID string                    `json:"purchase_order_id"`
	Status          string                    `json:"status,omitempty"`
	Items           []GoodsReceiptItemRequest `json:"items"`
	ReceivedDate    *time.Time                `json:"received_date,omitempty"`
	Notes           string                    `json:"notes,omitempty"`
}

// UpdateGoodsReceiptRequest body para PUT /api/goods-receipts/:id.
type UpdateGoodsReceiptRequest struct {
	Status       string                    `json:"status"`
	Items        []GoodsReceiptItemRequest `json:"items,omitempty"`
	ReceivedDate *time.Time                `json:"received_date,omitempty"`
	Notes        string                    `json:"notes,omitempty"`
}

// GoodsReceiptItemResponse línea en respuestas.
type GoodsReceiptItemResponse struct {
	ID                  string `json:"id"`
	PurchaseOrderItemID string `json:"purchase_order_item_id"`
	PartID              string `json:"part_id"`
	QuantityOrdered     int    `json:"quantity_ordered"`
	QuantityReceived    int    `json:"quantity_received"`
}

// GoodsReceiptResponse representación completa de una recepción.
type GoodsReceiptResponse struct {
	ID              string                     `json:"id"`
	ReceiptNumber   string                     `json:"receipt_number"`
	PurchaseOrderID string                     `json:"purchase_order_id"`
	SupplierID      string                     `json:"supplier_id"`
	Status          string                     `json:"status"`
	Items           []GoodsReceiptItemResponse `json:"items"`
	ReceivedDate    *time.Time                 `json:"received_date,omitempty"`
	Notes           string                     `json:"notes,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}
