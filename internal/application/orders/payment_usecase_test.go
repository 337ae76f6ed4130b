package orders_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// crea una orden de trabajo con total 1000 (sin impuesto) para pagos parciales.
func createUnpaidJobOrder(t *testing.T, f *ordersFixture) *entity.JobOrder {
	t.Helper()
	zero := decimal.Zero
	order, err := f.jobUC.Create(context.Background(), "user-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		Services: []dto.ServiceItemRequest{
			{Description: "Reparación de motor", LaborCost: decimal.NewFromInt(1000)},
		},
		TaxAmount: &zero,
	})
	require.NoError(t, err)
	require.True(t, order.GrandTotal.Equal(decimal.NewFromInt(1000)))
	require.Equal(t, entity.PaymentStatusUnpaid, order.PaymentStatus)
	return order
}

// Pago parcial y luego pago final: Unpaid -> Partial -> Paid.
func TestPaymentRecord_AbonosParciales(t *testing.T) {
	f := newOrdersFixture(t)
	order := createUnpaidJobOrder(t, f)

	res, err := f.paymentUC.Record(context.Background(), "caja-1", dto.RecordPaymentRequest{
		OrderID:   order.ID,
		OrderType: entity.OrderTypeJobOrder,
		Amount:    decimal.NewFromInt(400),
		Method:    entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.True(t, res.AmountPaid.Equal(decimal.NewFromInt(400)))
	assert.True(t, res.BalanceDue.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, entity.PaymentStatusPartial, res.PaymentStatus)
	assert.Equal(t, "caja-1", res.Payment.ProcessedByUserID)

	res, err = f.paymentUC.Record(context.Background(), "caja-1", dto.RecordPaymentRequest{
		OrderID:   order.ID,
		OrderType: entity.OrderTypeJobOrder,
		Amount:    decimal.NewFromInt(600),
		Method:    entity.PaymentMethodTransfer,
	})
	require.NoError(t, err)
	assert.True(t, res.BalanceDue.IsZero())
	assert.Equal(t, entity.PaymentStatusPaid, res.PaymentStatus)

	saved, err := f.jobUC.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, saved.PaymentHistory, 2)
	assert.Equal(t, entity.PaymentStatusPaid, saved.PaymentStatus)
}

// Reintentos con el mismo payment_id no duplican el abono.
func TestPaymentRecord_PaymentIDIdempotente(t *testing.T) {
	f := newOrdersFixture(t)
	order := createUnpaidJobOrder(t, f)

	req := dto.RecordPaymentRequest{
		PaymentID: "pay-repetido",
		OrderID:   order.ID,
		OrderType: entity.OrderTypeJobOrder,
		Amount:    decimal.NewFromInt(250),
	}
	first, err := f.paymentUC.Record(context.Background(), "caja-1", req)
	require.NoError(t, err)
	assert.True(t, first.AmountPaid.Equal(decimal.NewFromInt(250)))

	second, err := f.paymentUC.Record(context.Background(), "caja-1", req)
	require.NoError(t, err)
	assert.True(t, second.AmountPaid.Equal(decimal.NewFromInt(250)), "el reintento no suma")
	assert.Equal(t, entity.PaymentStatusPartial, second.PaymentStatus)

	saved, err := f.jobUC.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, saved.PaymentHistory, 1)
}

// Los pagos también aplican sobre ventas de mostrador.
func TestPaymentRecord_SobreVenta(t *testing.T) {
	f := newOrdersFixture(t)
	zero := decimal.Zero
	sale, err := f.salesUC.Create(context.Background(), "ven-1", dto.CreateSalesOrderRequest{
		Items:     []dto.PartItemRequest{{PartID: f.part.ID, Quantity: 2}},
		TaxAmount: &zero,
	})
	require.NoError(t, err)

	res, err := f.paymentUC.Record(context.Background(), "caja-1", dto.RecordPaymentRequest{
		OrderID:   sale.ID,
		OrderType: entity.OrderTypeSalesOrder,
		Amount:    decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, res.PaymentStatus)
	assert.Equal(t, entity.PaymentMethodCash, res.Payment.Method, "método por defecto")
}

func TestPaymentRecord_EntradasInvalidas(t *testing.T) {
	f := newOrdersFixture(t)
	order := createUnpaidJobOrder(t, f)

	_, err := f.paymentUC.Record(context.Background(), "caja-1", dto.RecordPaymentRequest{
		OrderID:   order.ID,
		OrderType: entity.OrderTypeJobOrder,
		Amount:    decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero")

	_, err = f.paymentUC.Record(context.Background(), "caja-1", dto.RecordPaymentRequest{
		OrderType: entity.OrderTypeJobOrder,
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin documento")

	_, err = f.paymentUC.Record(context.Background(), "caja-1", dto.RecordPaymentRequest{
		OrderID:   order.ID,
		OrderType: "Factura",
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de documento desconocido")

	_, err = f.paymentUC.Record(context.Background(), "caja-1", dto.RecordPaymentRequest{
		OrderID:   "no-existe",
		OrderType: entity.OrderTypeJobOrder,
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
