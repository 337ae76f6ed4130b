package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de documento al que pertenece un pago.
const (
	OrderTypeJobOrder   = "JobOrder"
	OrderTypeSalesOrder = "SalesOrder"
)

// Estados de pago derivados de (grandTotal, amountPaid).
// La derivación vive en domain/billing; el campo persistido es solo caché.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPartial = "Partial"
	PaymentStatusUnpaid  = "Unpaid"
)

// Métodos de pago aceptados en el taller.
const (
	PaymentMethodCash     = "Cash"
	PaymentMethodCard     = "Card"
	PaymentMethodTransfer = "Transfer"
)

// Payment representa un abono a una orden de trabajo o venta directa.
// Es inmutable una vez creado: no existe edición ni anulación.
type Payment struct {
	ID                string
	OrderID           string
	OrderType         string // JobOrder | SalesOrder
	Amount            decimal.Decimal // > 0
	PaymentDate       time.Time
	Method            string
	Notes             string
	ProcessedByUserID string
	CreatedAt         time.Time
}
