package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta directa de mostrador.
const (
	SaleStatusDraft     = "Draft"
	SaleStatusCompleted = "Completed"
	SaleStatusCancelled = "Cancelled"
)

// WalkInCustomerName es el nombre que recibe una venta sin cliente registrado.
const WalkInCustomerName = "Walk-in Customer"

// SalesOrderItem es una línea de venta directa de repuestos.
// Invariante: TotalPrice == Quantity * PricePerUnit (validado al guardar).
type SalesOrderItem struct {
	ID           string
	PartID       string
	PartName     string
	Quantity     int // >= 1
	PricePerUnit decimal.Decimal
	TotalPrice   decimal.Decimal
}

// SalesOrder representa una venta de mostrador: estructura análoga a JobOrder
// pero sin líneas de servicio. CustomerID vacío = cliente de mostrador.
// GrandTotal = ítems - descuento + impuesto. Al crearse descuenta inventario.
type SalesOrder struct {
	ID              string
	OrderNumber     string
	CustomerID      string // opcional
	CustomerName    string
	Status          string
	Items           []SalesOrderItem
	DiscountAmount  decimal.Decimal
	TaxAmount       decimal.Decimal
	GrandTotal      decimal.Decimal
	AmountPaid      decimal.Decimal
	PaymentStatus   string
	PaymentHistory  []Payment
	Notes           string
	CreatedByUserID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ItemsTotal suma las líneas de la venta.
func (s *SalesOrder) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

// BalanceDue devuelve el saldo pendiente (GrandTotal - AmountPaid).
func (s *SalesOrder) BalanceDue() decimal.Decimal {
	return s.GrandTotal.Sub(s.AmountPaid)
}
