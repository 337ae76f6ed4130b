package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/inventory"
	"github.com/jhoicas/TallerMotos-api/internal/application/orders"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/infrastructure/memory"
	"github.com/jhoicas/TallerMotos-api/pkg/logger"
)

// ordersFixture arma un taller mínimo: un cliente registrado y un repuesto
// con stock 10 a 25 cada uno, con tasa de impuesto por defecto del 10%.
type ordersFixture struct {
	store     *memory.Store
	jobUC     *orders.JobOrderUseCase
	salesUC   *orders.SalesOrderUseCase
	paymentUC *orders.PaymentUseCase
	customer  *entity.Customer
	part      *entity.Part
}

func newOrdersFixture(t *testing.T) *ordersFixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	customer := &entity.Customer{ID: "cus-1", Name: "Pedro Gómez", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Customers().Create(customer))
	part := &entity.Part{
		ID: "part-1", SKU: "FIL-001", Name: "Filtro de aceite",
		Price: decimal.NewFromInt(25), StockQuantity: 10, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Parts().Create(part))

	txRunner := memory.NewTxRunner(store)
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	stockUC := inventory.NewStockUseCase(txRunner, store.Parts(), log)
	taxRate := decimal.NewFromInt(10)

	jobUC := orders.NewJobOrderUseCase(txRunner, stockUC, store.JobOrders(), store.Payments(), store.Customers(), store.Parts(), taxRate)
	salesUC := orders.NewSalesOrderUseCase(txRunner, stockUC, store.SalesOrders(), store.Payments(), store.Customers(), store.Parts(), taxRate)
	return &ordersFixture{
		store:     store,
		jobUC:     jobUC,
		salesUC:   salesUC,
		paymentUC: orders.NewPaymentUseCase(jobUC, salesUC),
		customer:  customer,
		part:      part,
	}
}

func (f *ordersFixture) stock(t *testing.T) int {
	t.Helper()
	part, err := f.store.Parts().GetByID(f.part.ID)
	require.NoError(t, err)
	return part.StockQuantity
}

// Orden con mano de obra y 4 repuestos: el stock baja de 10 a 6 y los totales
// se derivan con la tasa por defecto.
func TestJobOrderCreate_DebitaInventario(t *testing.T) {
	f := newOrdersFixture(t)

	order, err := f.jobUC.Create(context.Background(), "mec-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		Services: []dto.ServiceItemRequest{
			{Description: "Cambio de aceite", LaborCost: decimal.NewFromInt(50)},
		},
		Parts: []dto.PartItemRequest{
			{PartID: f.part.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, f.stock(t), "stock 10 - 4 = 6")
	assert.Equal(t, entity.JobStatusPending, order.Status)
	assert.Equal(t, f.customer.Name, order.CustomerName)
	// mano de obra 50 + repuestos 100 = 150; impuesto 10% = 15; total 165.
	assert.True(t, order.TaxAmount.Equal(decimal.NewFromInt(15)), "impuesto: %s", order.TaxAmount)
	assert.True(t, order.GrandTotal.Equal(decimal.NewFromInt(165)), "total: %s", order.GrandTotal)
	assert.Equal(t, entity.PaymentStatusUnpaid, order.PaymentStatus)
	assert.True(t, order.BalanceDue().Equal(order.GrandTotal))
}

// Sin stock suficiente toda la creación hace rollback: ni orden ni débito.
func TestJobOrderCreate_StockInsuficienteRollback(t *testing.T) {
	f := newOrdersFixture(t)

	_, err := f.jobUC.Create(context.Background(), "mec-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		Parts: []dto.PartItemRequest{
			{PartID: f.part.ID, Quantity: 11},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.stock(t), "el débito parcial debe revertirse")
	list, err := f.jobUC.List(context.Background(), "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "la orden no debe persistirse")
}

// MarkAsPaid siembra el pago inicial por el total y la orden nace Paid.
func TestJobOrderCreate_NaceComoPagada(t *testing.T) {
	f := newOrdersFixture(t)

	order, err := f.jobUC.Create(context.Background(), "mec-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		Services: []dto.ServiceItemRequest{
			{Description: "Revisión general", LaborCost: decimal.NewFromInt(100)},
		},
		MarkAsPaid:    true,
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)
	require.Len(t, order.PaymentHistory, 1)
	assert.True(t, order.PaymentHistory[0].Amount.Equal(order.GrandTotal))
	assert.True(t, order.BalanceDue().IsZero())
}

// Una orden de valor cero nace Paid sin sembrar pago alguno.
func TestJobOrderCreate_ValorCeroSinPagoSembrado(t *testing.T) {
	f := newOrdersFixture(t)
	zero := decimal.Zero

	order, err := f.jobUC.Create(context.Background(), "mec-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		Services: []dto.ServiceItemRequest{
			{Description: "Garantía", LaborCost: decimal.Zero},
		},
		TaxAmount:  &zero,
		MarkAsPaid: true,
	})
	require.NoError(t, err)

	assert.True(t, order.GrandTotal.IsZero())
	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)
	assert.Empty(t, order.PaymentHistory, "valor cero no genera pago sintético")
}

// El precio de línea usa el precio de venta vigente salvo override del caller.
func TestJobOrderCreate_PrecioVigenteYOverride(t *testing.T) {
	f := newOrdersFixture(t)
	override := decimal.NewFromInt(30)
	zero := decimal.Zero

	order, err := f.jobUC.Create(context.Background(), "mec-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		TaxAmount:  &zero,
		Parts: []dto.PartItemRequest{
			{PartID: f.part.ID, Quantity: 1},
			{PartID: f.part.ID, Quantity: 2, PricePerUnit: &override},
		},
	})
	require.NoError(t, err)

	assert.True(t, order.PartsUsed[0].PricePerUnit.Equal(decimal.NewFromInt(25)))
	assert.True(t, order.PartsUsed[1].PricePerUnit.Equal(decimal.NewFromInt(30)))
	assert.True(t, order.GrandTotal.Equal(decimal.NewFromInt(85)), "25 + 60 sin impuesto")
}

func TestJobOrderCreate_Invalida(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	_, err := f.jobUC.Create(ctx, "mec-1", dto.CreateJobOrderRequest{
		Services: []dto.ServiceItemRequest{{Description: "x", LaborCost: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cliente")

	_, err = f.jobUC.Create(ctx, "mec-1", dto.CreateJobOrderRequest{CustomerID: f.customer.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.jobUC.Create(ctx, "mec-1", dto.CreateJobOrderRequest{
		CustomerID: "no-existe",
		Services:   []dto.ServiceItemRequest{{Description: "x", LaborCost: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")
}

// GetByID recalcula AmountPaid/PaymentStatus desde el ledger, aunque el caché
// persistido esté desactualizado.
func TestJobOrderGetByID_RecalculaDesdeElLedger(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	order, err := f.jobUC.Create(ctx, "mec-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		Services:   []dto.ServiceItemRequest{{Description: "Frenos", LaborCost: decimal.NewFromInt(200)}},
	})
	require.NoError(t, err)

	// Pago registrado directo en el ledger, sin tocar el documento.
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		OrderType:   entity.OrderTypeJobOrder,
		Amount:      order.GrandTotal,
		PaymentDate: time.Now(),
		Method:      entity.PaymentMethodCash,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, f.store.Payments().Create(payment))

	got, err := f.jobUC.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, got.PaymentStatus)
	assert.True(t, got.AmountPaid.Equal(order.GrandTotal))
}

func TestJobOrderUpdateStatus(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	order, err := f.jobUC.Create(ctx, "mec-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		Services:   []dto.ServiceItemRequest{{Description: "Frenos", LaborCost: decimal.NewFromInt(200)}},
	})
	require.NoError(t, err)

	got, err := f.jobUC.UpdateStatus(ctx, order.ID, entity.JobStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusInProgress, got.Status)

	_, err = f.jobUC.UpdateStatus(ctx, order.ID, "Archivada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobOrderList_FiltroPorCliente(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	other := &entity.Customer{ID: "cus-2", Name: "Lucía Pérez", CreatedAt: time.Now()}
	require.NoError(t, f.store.Customers().Create(other))

	_, err := f.jobUC.Create(ctx, "mec-1", dto.CreateJobOrderRequest{
		CustomerID: f.customer.ID,
		Services:   []dto.ServiceItemRequest{{Description: "A", LaborCost: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	_, err = f.jobUC.Create(ctx, "mec-1", dto.CreateJobOrderRequest{
		CustomerID: other.ID,
		Services:   []dto.ServiceItemRequest{{Description: "B", LaborCost: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	all, err := f.jobUC.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.jobUC.List(ctx, other.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, other.ID, filtered[0].CustomerID)
}
