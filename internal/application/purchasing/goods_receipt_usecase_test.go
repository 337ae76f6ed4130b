package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/inventory"
	"github.com/jhoicas/TallerMotos-api/internal/application/purchasing"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/infrastructure/memory"
	"github.com/jhoicas/TallerMotos-api/pkg/logger"
)

type receiptFixture struct {
	store *memory.Store
	uc    *purchasing.GoodsReceiptUseCase
	poUC  *purchasing.PurchaseOrderUseCase
	po    *entity.PurchaseOrder
	part  *entity.Part
}

// newReceiptFixture arma un repuesto con stock 10 y una orden de compra
// aprobada por 20 unidades de ese repuesto.
func newReceiptFixture(t *testing.T) *receiptFixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	part := &entity.Part{
		ID: "part-1", SKU: "FIL-001", Name: "Filtro de aceite",
		Price: decimal.NewFromInt(25), StockQuantity: 10, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Parts().Create(part))
	supplier := &entity.Supplier{ID: "sup-1", Name: "Repuestos del Centro", IsActive: true, CreatedAt: now}
	require.NoError(t, store.Suppliers().Create(supplier))

	txRunner := memory.NewTxRunner(store)
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	stockUC := inventory.NewStockUseCase(txRunner, store.Parts(), log)
	poUC := purchasing.NewPurchaseOrderUseCase(txRunner, store.PurchaseOrders(), store.Suppliers(), store.GoodsReceipts(), decimal.NewFromInt(10))

	po, err := poUC.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Status:     entity.POStatusApproved,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Filtro de aceite", PartID: part.ID, Quantity: 20, UnitPrice: decimal.NewFromInt(18)},
		},
	})
	require.NoError(t, err)

	return &receiptFixture{
		store: store,
		uc:    purchasing.NewGoodsReceiptUseCase(txRunner, stockUC, store.GoodsReceipts(), store.PurchaseOrders()),
		poUC:  poUC,
		po:    po,
		part:  part,
	}
}

func (f *receiptFixture) stock(t *testing.T) int {
	t.Helper()
	part, err := f.store.Parts().GetByID(f.part.ID)
	require.NoError(t, err)
	return part.StockQuantity
}

// Recepción completa que nace en Completed: acredita stock y la orden pasa a
// FullyReceived.
func TestGoodsReceiptCreate_CompletaAcreditaYAvanza(t *testing.T) {
	f := newReceiptFixture(t)

	gr, err := f.uc.Create(context.Background(), "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Status:          entity.ReceiptStatusCompleted,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 20},
		},
	})
	require.NoError(t, err)
	assert.True(t, gr.StockCredited)
	assert.Equal(t, 30, f.stock(t), "10 iniciales + 20 recibidas")

	po, err := f.poUC.GetByID(context.Background(), f.po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusFullyReceived, po.Status)
}

// Recepción parcial: acredita lo recibido y la orden queda PartiallyReceived.
func TestGoodsReceiptCreate_ParcialDejaOrdenParcial(t *testing.T) {
	f := newReceiptFixture(t)

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Status:          entity.ReceiptStatusCompleted,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 8},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 18, f.stock(t))

	po, err := f.poUC.GetByID(context.Background(), f.po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartiallyReceived, po.Status)
}

// Dos recepciones completadas que cubren la orden la dejan FullyReceived.
func TestGoodsReceipt_RecepcionesAcumuladas(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Status:          entity.ReceiptStatusCompleted,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 12},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Status:          entity.ReceiptStatusCompleted,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 8},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 30, f.stock(t))
	po, err := f.poUC.GetByID(ctx, f.po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusFullyReceived, po.Status)
}

// El crédito ocurre exactamente una vez: reguardar una recepción ya completada
// no vuelve a acreditar.
func TestGoodsReceiptUpdate_CreditoExactamenteUnaVez(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	gr, err := f.uc.Create(ctx, "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Status:          entity.ReceiptStatusPending,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 20},
		},
	})
	require.NoError(t, err)
	assert.False(t, gr.StockCredited)
	assert.Equal(t, 10, f.stock(t), "Pending no acredita")

	// Transición a Completed: acredita.
	gr, err = f.uc.Update(ctx, gr.ID, dto.UpdateGoodsReceiptRequest{Status: entity.ReceiptStatusCompleted})
	require.NoError(t, err)
	assert.True(t, gr.StockCredited)
	assert.Equal(t, 30, f.stock(t))

	// Reguardar en Completed: sin doble crédito.
	_, err = f.uc.Update(ctx, gr.ID, dto.UpdateGoodsReceiptRequest{Status: entity.ReceiptStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 30, f.stock(t))
}

// Salir de Completed no debita: el crédito es forward-only.
func TestGoodsReceiptUpdate_SalirDeCompletedNoRevierte(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	gr, err := f.uc.Create(ctx, "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Status:          entity.ReceiptStatusCompleted,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 20},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 30, f.stock(t))

	gr, err = f.uc.Update(ctx, gr.ID, dto.UpdateGoodsReceiptRequest{Status: entity.ReceiptStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, 30, f.stock(t), "cancelar después de acreditar no debita")
	assert.True(t, gr.StockCredited)

	// Y volver a Completed tampoco acredita de nuevo.
	_, err = f.uc.Update(ctx, gr.ID, dto.UpdateGoodsReceiptRequest{Status: entity.ReceiptStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 30, f.stock(t))
}

// No se puede recibir contra una orden cancelada.
func TestGoodsReceiptCreate_OrdenCancelada(t *testing.T) {
	f := newReceiptFixture(t)
	f.po.Status = entity.POStatusCancelled
	require.NoError(t, f.store.PurchaseOrders().Update(f.po))

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Recibir más de lo ordenado en una línea es inválido.
func TestGoodsReceiptCreate_SobreRecepcion(t *testing.T) {
	f := newReceiptFixture(t)

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 21},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Línea que no pertenece a la orden.
func TestGoodsReceiptCreate_LineaAjena(t *testing.T) {
	f := newReceiptFixture(t)

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: "linea-ajena", QuantityReceived: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Los ítems de una recepción ya acreditada no admiten edición.
func TestGoodsReceiptUpdate_ItemsBloqueadosTrasAcreditar(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	gr, err := f.uc.Create(ctx, "user-1", dto.CreateGoodsReceiptRequest{
		PurchaseOrderID: f.po.ID,
		Status:          entity.ReceiptStatusCompleted,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 20},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, gr.ID, dto.UpdateGoodsReceiptRequest{
		Status: entity.ReceiptStatusCompleted,
		Items: []dto.GoodsReceiptItemRequest{
			{PurchaseOrderItemID: f.po.Items[0].ID, QuantityReceived: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
