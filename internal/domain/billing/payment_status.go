package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// Tolerance absorbe deriva de redondeo al comparar montos pagados contra el
// total del documento (0.001).
var Tolerance = decimal.NewFromFloat(0.001)

// DerivePaymentStatus deriva el estado de pago desde (grandTotal, amountPaid).
// Es la única regla del sistema: todo punto que muestre saldo o registre un
// pago debe usarla, nunca el campo cacheado.
//
//	grandTotal <= ε y amountPaid <= ε  -> Paid   (documentos de valor cero quedan saldados)
//	amountPaid >= grandTotal - ε       -> Paid
//	amountPaid > 0                     -> Partial
//	en otro caso                       -> Unpaid
func DerivePaymentStatus(grandTotal, amountPaid decimal.Decimal) string {
	if grandTotal.LessThanOrEqual(Tolerance) && amountPaid.LessThanOrEqual(Tolerance) {
		return entity.PaymentStatusPaid
	}
	if amountPaid.GreaterThanOrEqual(grandTotal.Sub(Tolerance)) {
		return entity.PaymentStatusPaid
	}
	if amountPaid.GreaterThan(decimal.Zero) {
		return entity.PaymentStatusPartial
	}
	return entity.PaymentStatusUnpaid
}

// SumPayments recalcula el monto pagado desde el historial completo de pagos.
func SumPayments(payments []entity.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
