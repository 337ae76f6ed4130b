package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceItemRequest línea de mano de obra de una orden de trabajo.
type ServiceItemRequest struct {
	ServiceID   string          `json:"service_id,omitempty"`
	Description string          `json:"description"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
}

// PartItemRequest línea de repuesto. PricePerUnit nil usa el precio de venta
// vigente del repuesto.
type PartItemRequest struct {
	PartID       string           `json:"part_id"`
	Quantity     int              `json:"quantity"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
}

// CreateJobOrderRequest body para POST /api/job-orders.
// TaxAmount nil aplica la tasa por defecto del taller sobre el subtotal
// después de descuento. MarkAsPaid true siembra un pago inicial por el total.
type CreateJobOrderRequest struct {
	CustomerID         string               `json:"customer_id"`
	MotorcycleID       string               `json:"motorcycle_id,omitempty"`
	AssignedMechanicID string               `json:"assigned_mechanic_id,omitempty"`
	Services           []ServiceItemRequest `json:"services"`
	Parts              []PartItemRequest    `json:"parts,omitempty"`
	DiscountAmount     decimal.Decimal      `json:"discount_amount,omitempty"`
	TaxAmount          *decimal.Decimal     `json:"tax_amount,omitempty"`
	Notes              string               `json:"notes,omitempty"`
	MarkAsPaid         bool                 `json:"mark_as_paid,omitempty"`
	PaymentMethod      string               `json:"payment_method,omitempty"`
}

// CreateSalesOrderRequest body para POST /api/sales-orders.
// CustomerID vacío registra la venta a nombre del cliente de mostrador.
type CreateSalesOrderRequest struct {
	CustomerID     string            `json:"customer_id,omitempty"`
	Items          []PartItemRequest `json:"items"`
	DiscountAmount decimal.Decimal   `json:"discount_amount,omitempty"`
	TaxAmount      *decimal.Decimal  `json:"tax_amount,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	MarkAsPaid     bool              `json:"mark_as_paid,omitempty"`
	PaymentMethod  string            `json:"payment_method,omitempty"`
}

// UpdateOrderStatusRequest body para POST /api/job-orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// RecordPaymentRequest body para POST /api/payments.
// PaymentID es opcional: si el caller lo envía y ya existe un pago con ese id
// en el documento, la operación es idempotente (no duplica el abono).
type RecordPaymentRequest struct {
	PaymentID   string          `json:"payment_id,omitempty"`
	OrderID     string          `json:"order_id"`
	OrderType   string          `json:"order_type"` // JobOrder | SalesOrder
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Notes       string          `json:"notes,omitempty"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

// PaymentResponse representación de un pago.
type PaymentResponse struct {
	ID                string          `json:"id"`
	OrderID           string          `json:"order_id"`
	OrderType         string          `json:"order_type"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentDate       time.Time       `json:"payment_date"`
	Method            string          `json:"method"`
	Notes             string          `json:"notes,omitempty"`
	ProcessedByUserID string          `json:"processed_by_user_id"`
}

// ServiceItemResponse línea de mano de obra en respuestas.
type ServiceItemResponse struct {
	ID          string          `json:"id"`
	ServiceID   string          `json:"service_id,omitempty"`
	Description string          `json:"description"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
}

// PartItemResponse línea de repuesto en respuestas.
type PartItemResponse struct {
	ID           string          `json:"id"`
	PartID       string          `json:"part_id"`
	PartName     string          `json:"part_name"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// JobOrderResponse representación completa de una orden de trabajo.
// AmountPaid, PaymentStatus y BalanceDue vienen recalculados del historial.
type JobOrderResponse struct {
	ID                 string                `json:"id"`
	OrderNumber        string                `json:"order_number"`
	CustomerID         string                `json:"customer_id"`
	CustomerName       string                `json:"customer_name"`
	MotorcycleID       string                `json:"motorcycle_id,omitempty"`
	AssignedMechanicID string                `json:"assigned_mechanic_id,omitempty"`
	Status             string                `json:"status"`
	Services           []ServiceItemResponse `json:"services"`
	Parts              []PartItemResponse    `json:"parts"`
	DiscountAmount     decimal.Decimal       `json:"discount_amount"`
	TaxAmount          decimal.Decimal       `json:"tax_amount"`
	GrandTotal         decimal.Decimal       `json:"grand_total"`
	AmountPaid         decimal.Decimal       `json:"amount_paid"`
	BalanceDue         decimal.Decimal       `json:"balance_due"`
	PaymentStatus      string                `json:"payment_status"`
	Payments           []PaymentResponse     `json:"payments"`
	Notes              string                `json:"notes,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// SalesOrderResponse representación completa de una venta directa.
type SalesOrderResponse struct {
	ID             string             `json:"id"`
	OrderNumber    string             `json:"order_number"`
	CustomerID     string             `json:"customer_id,omitempty"`
	CustomerName   string             `json:"customer_name"`
	Status         string             `json:"status"`
	Items          []PartItemResponse `json:"items"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	AmountPaid     decimal.Decimal    `json:"amount_paid"`
	BalanceDue     decimal.Decimal    `json:"balance_due"`
	PaymentStatus  string             `json:"payment_status"`
	Payments       []PaymentResponse  `json:"payments"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
