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

// Venta a cliente registrado: descuenta stock y deriva totales.
func TestSalesOrderCreate_ClienteRegistrado(t *testing.T) {
	f := newOrdersFixture(t)

	order, err := f.salesUC.Create(context.Background(), "ven-1", dto.CreateSalesOrderRequest{
		CustomerID: f.customer.ID,
		Items: []dto.PartItemRequest{
			{PartID: f.part.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, f.stock(t))
	assert.Equal(t, f.customer.Name, order.CustomerName)
	assert.Equal(t, entity.SaleStatusCompleted, order.Status)
	// 2 * 25 = 50; impuesto 10% = 5; total 55.
	assert.True(t, order.GrandTotal.Equal(decimal.NewFromInt(55)), "total: %s", order.GrandTotal)
	assert.Equal(t, entity.PaymentStatusUnpaid, order.PaymentStatus)
}

// Venta sin CustomerID queda a nombre del cliente de mostrador.
func TestSalesOrderCreate_ClienteDeMostrador(t *testing.T) {
	f := newOrdersFixture(t)

	order, err := f.salesUC.Create(context.Background(), "ven-1", dto.CreateSalesOrderRequest{
		Items: []dto.PartItemRequest{
			{PartID: f.part.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, order.CustomerID)
	assert.Equal(t, entity.WalkInCustomerName, order.CustomerName)
}

// MarkAsPaid siembra el pago por el total y la venta nace Paid.
func TestSalesOrderCreate_NaceComoPagada(t *testing.T) {
	f := newOrdersFixture(t)

	order, err := f.salesUC.Create(context.Background(), "ven-1", dto.CreateSalesOrderRequest{
		Items: []dto.PartItemRequest{
			{PartID: f.part.ID, Quantity: 2},
		},
		MarkAsPaid:    true,
		PaymentMethod: entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)
	require.Len(t, order.PaymentHistory, 1)
	assert.Equal(t, entity.PaymentMethodCard, order.PaymentHistory[0].Method)
	assert.True(t, order.BalanceDue().IsZero())
}

// Sin stock suficiente, la venta completa hace rollback.
func TestSalesOrderCreate_StockInsuficienteRollback(t *testing.T) {
	f := newOrdersFixture(t)

	_, err := f.salesUC.Create(context.Background(), "ven-1", dto.CreateSalesOrderRequest{
		Items: []dto.PartItemRequest{
			{PartID: f.part.ID, Quantity: 99},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.stock(t))
	list, err := f.salesUC.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSalesOrderCreate_ClienteInexistente(t *testing.T) {
	f := newOrdersFixture(t)

	_, err := f.salesUC.Create(context.Background(), "ven-1", dto.CreateSalesOrderRequest{
		CustomerID: "no-existe",
		Items: []dto.PartItemRequest{
			{PartID: f.part.ID, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
