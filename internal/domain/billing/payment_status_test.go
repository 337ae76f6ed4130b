package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/TallerMotos-api/internal/domain/billing"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// DerivePaymentStatus es la única regla de estado de pago del sistema: todo
// punto que muestre saldo o registre un pago la usa. Estos tests fijan la
// tabla de verdad completa, incluida la regla de valor cero y la tolerancia
// de 0.001 que absorbe deriva de redondeo.
// ──────────────────────────────────────────────────────────────────────────────

func TestDerivePaymentStatus_TablaDeVerdad(t *testing.T) {
	cases := []struct {
		name       string
		grandTotal float64
		amountPaid float64
		want       string
	}{
		{"sin pagos", 1000, 0, entity.PaymentStatusUnpaid},
		{"pago parcial", 1000, 400, entity.PaymentStatusPartial},
		{"pago exacto", 1000, 1000, entity.PaymentStatusPaid},
		{"pago en exceso", 1000, 1200, entity.PaymentStatusPaid},
		{"documento de valor cero sin pagos", 0, 0, entity.PaymentStatusPaid},
		{"dentro de la tolerancia", 100, 99.9995, entity.PaymentStatusPaid},
		{"fuera de la tolerancia", 100, 99.99, entity.PaymentStatusPartial},
		{"pago mínimo", 100, 0.01, entity.PaymentStatusPartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := billing.DerivePaymentStatus(
				decimal.NewFromFloat(tc.grandTotal),
				decimal.NewFromFloat(tc.amountPaid),
			)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestDerivePaymentStatus_SecuenciaDePagos reproduce el flujo típico de una
// orden de 1000: abono de 400 deja Partial con saldo 600; abono de 600 deja
// Paid con saldo 0.
func TestDerivePaymentStatus_SecuenciaDePagos(t *testing.T) {
	grandTotal := decimal.NewFromInt(1000)

	paid := decimal.NewFromInt(400)
	assert.Equal(t, entity.PaymentStatusPartial, billing.DerivePaymentStatus(grandTotal, paid))
	assert.True(t, grandTotal.Sub(paid).Equal(decimal.NewFromInt(600)), "saldo después del primer abono")

	paid = paid.Add(decimal.NewFromInt(600))
	assert.Equal(t, entity.PaymentStatusPaid, billing.DerivePaymentStatus(grandTotal, paid))
	assert.True(t, grandTotal.Sub(paid).IsZero(), "saldo en cero tras el segundo abono")
}

// TestSumPayments_Conmutativo verifica que aplicar los pagos en cualquier orden
// produce el mismo monto pagado (y por tanto el mismo estado derivado).
func TestSumPayments_Conmutativo(t *testing.T) {
	p1 := entity.Payment{ID: "p1", Amount: decimal.NewFromFloat(123.45), PaymentDate: time.Now()}
	p2 := entity.Payment{ID: "p2", Amount: decimal.NewFromFloat(876.55), PaymentDate: time.Now()}

	sumA := billing.SumPayments([]entity.Payment{p1, p2})
	sumB := billing.SumPayments([]entity.Payment{p2, p1})

	assert.True(t, sumA.Equal(sumB), "la suma de pagos debe ser conmutativa")
	assert.Equal(t,
		billing.DerivePaymentStatus(decimal.NewFromInt(1000), sumA),
		billing.DerivePaymentStatus(decimal.NewFromInt(1000), sumB),
	)
}

func TestSumPayments_Vacio(t *testing.T) {
	assert.True(t, billing.SumPayments(nil).IsZero())
}
