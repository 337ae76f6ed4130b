package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo.
const (
	JobStatusPending         = "Pending"
	JobStatusInProgress      = "InProgress"
	JobStatusWaitingForParts = "WaitingForParts"
	JobStatusCompleted       = "Completed"
	JobStatusCancelled       = "Cancelled"
)

// JobOrderServiceItem es una línea de mano de obra de una orden de trabajo.
type JobOrderServiceItem struct {
	ID          string
	ServiceID   string // opcional: referencia al catálogo de servicios
	Description string
	LaborCost   decimal.Decimal
}

// JobOrderPartItem es una línea de repuesto consumido por la orden.
// Invariante: TotalPrice == Quantity * PricePerUnit.
type JobOrderPartItem struct {
	ID           string
	PartID       string
	PartName     string
	Quantity     int // >= 1
	PricePerUnit decimal.Decimal
	TotalPrice   decimal.Decimal
}

// JobOrder representa una orden de reparación/servicio que combina mano de obra
// y repuestos. Al crearse descuenta del inventario cada línea de repuesto.
// GrandTotal = manoDeObra + repuestos - descuento + impuesto.
// AmountPaid y PaymentStatus son derivados del historial de pagos; los campos
// persistidos son caché y se recalculan en cada lectura.
type JobOrder struct {
	ID                 string
	OrderNumber        string
	CustomerID         string
	CustomerName       string
	MotorcycleID       string
	AssignedMechanicID string
	Status             string
	ServicesPerformed  []JobOrderServiceItem
	PartsUsed          []JobOrderPartItem
	DiscountAmount     decimal.Decimal
	TaxAmount          decimal.Decimal
	GrandTotal         decimal.Decimal
	AmountPaid         decimal.Decimal
	PaymentStatus      string
	PaymentHistory     []Payment
	Notes              string
	CreatedByUserID    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LaborTotal suma las líneas de mano de obra.
func (j *JobOrder) LaborTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range j.ServicesPerformed {
		total = total.Add(s.LaborCost)
	}
	return total
}

// PartsTotal suma las líneas de repuestos.
func (j *JobOrder) PartsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range j.PartsUsed {
		total = total.Add(p.TotalPrice)
	}
	return total
}

// BalanceDue devuelve el saldo pendiente (GrandTotal - AmountPaid).
func (j *JobOrder) BalanceDue() decimal.Decimal {
	return j.GrandTotal.Sub(j.AmountPaid)
}
