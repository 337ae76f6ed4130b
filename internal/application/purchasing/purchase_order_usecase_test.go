package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/purchasing"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/infrastructure/memory"
)

type poFixture struct {
	store    *memory.Store
	uc       *purchasing.PurchaseOrderUseCase
	reqUC    *purchasing.RequisitionUseCase
	supplier *entity.Supplier
}

func newPOFixture(t *testing.T) *poFixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        "sup-1",
		Name:      "Repuestos del Centro",
		IsActive:  true,
		CreatedAt: now,
	}
	require.NoError(t, store.Suppliers().Create(supplier))
	txRunner := memory.NewTxRunner(store)
	return &poFixture{
		store:    store,
		uc:       purchasing.NewPurchaseOrderUseCase(txRunner, store.PurchaseOrders(), store.Suppliers(), store.GoodsReceipts(), decimal.NewFromInt(10)),
		reqUC:    purchasing.NewRequisitionUseCase(store.Requisitions()),
		supplier: supplier,
	}
}

// Dos líneas de 200 con tasa plana del 10%: subtotal 400, impuesto 40,
// total 440.
func TestPurchaseOrderCreate_TotalesConTasaPlana(t *testing.T) {
	f := newPOFixture(t)

	po, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Kit de arrastre", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{Description: "Llanta trasera", Quantity: 1, UnitPrice: decimal.NewFromInt(200)},
		},
	})
	require.NoError(t, err)

	assert.True(t, po.SubTotal.Equal(decimal.NewFromInt(400)), "subtotal: %s", po.SubTotal)
	assert.True(t, po.TaxAmount.Equal(decimal.NewFromInt(40)), "impuesto: %s", po.TaxAmount)
	assert.True(t, po.GrandTotal.Equal(decimal.NewFromInt(440)), "total: %s", po.GrandTotal)
	assert.Equal(t, entity.POStatusDraft, po.Status)
	assert.NotEmpty(t, po.OrderNumber)
}

// Una tasa plana configurada en cero significa compras sin impuesto, no se
// sustituye por el valor por defecto.
func TestPurchaseOrderCreate_TasaCeroEsValida(t *testing.T) {
	f := newPOFixture(t)
	uc := purchasing.NewPurchaseOrderUseCase(memory.NewTxRunner(f.store), f.store.PurchaseOrders(), f.store.Suppliers(), f.store.GoodsReceipts(), decimal.Zero)

	po, err := uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Bujía", Quantity: 50, UnitPrice: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)
	assert.True(t, po.TaxAmount.IsZero(), "impuesto: %s", po.TaxAmount)
	assert.True(t, po.GrandTotal.Equal(decimal.NewFromInt(400)), "total: %s", po.GrandTotal)
}

// Impuesto explícito del caller reemplaza la tasa plana.
func TestPurchaseOrderCreate_ImpuestoExplicito(t *testing.T) {
	f := newPOFixture(t)
	tax := decimal.NewFromInt(15)

	po, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		TaxAmount:  &tax,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Aceite 10W40", Quantity: 4, UnitPrice: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)
	assert.True(t, po.TaxAmount.Equal(decimal.NewFromInt(15)))
	assert.True(t, po.GrandTotal.Equal(decimal.NewFromInt(115)))
}

// TotalPrice enviado que no coincide con Quantity*UnitPrice se rechaza.
func TestPurchaseOrderCreate_TotalDeLineaInconsistente(t *testing.T) {
	f := newPOFixture(t)
	bad := decimal.NewFromInt(999)

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Cadena", Quantity: 2, UnitPrice: decimal.NewFromInt(50), TotalPrice: &bad},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchaseOrderCreate_ProveedorInexistente(t *testing.T) {
	f := newPOFixture(t)

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "no-existe",
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Cadena", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Crear la orden desde una requisición aprobada mueve la requisición a Ordered
// en la misma transacción.
func TestPurchaseOrderCreate_DesdeRequisicionAprobada(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()

	req, err := f.reqUC.Create(ctx, "user-1", dto.CreateRequisitionRequest{
		Items: []dto.RequisitionItemRequest{{Description: "Filtro", Quantity: 5}},
	})
	require.NoError(t, err)
	_, err = f.reqUC.TransitionStatus(ctx, req.ID, entity.RequisitionStatusApproved, "jefe-1")
	require.NoError(t, err)

	po, err := f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID:            f.supplier.ID,
		PurchaseRequisitionID: req.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Filtro", Quantity: 5, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, req.ID, po.PurchaseRequisitionID)

	stored, err := f.reqUC.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionStatusOrdered, stored.Status)
}

// Una requisición que no está Approved no puede ordenarse; nada se persiste.
func TestPurchaseOrderCreate_RequisicionNoAprobada(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()

	req, err := f.reqUC.Create(ctx, "user-1", dto.CreateRequisitionRequest{
		Items: []dto.RequisitionItemRequest{{Description: "Filtro", Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID:            f.supplier.ID,
		PurchaseRequisitionID: req.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Filtro", Quantity: 5, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	// Rollback: la orden no existe y la requisición sigue en Draft.
	pos, err := f.uc.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, pos)
	stored, err := f.reqUC.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionStatusDraft, stored.Status)
}

// Update rederiva los totales desde la lista de ítems vigente.
func TestPurchaseOrderUpdate_RederivaTotales(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()

	po, err := f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Kit de arrastre", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Kit de arrastre", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.SubTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, updated.GrandTotal.Equal(decimal.NewFromInt(110)))
}

// Los id de línea enviados en la actualización conservan la identidad de la
// línea; las recepciones los referencian.
func TestPurchaseOrderUpdate_ConservaIDsDeLinea(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()

	po, err := f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Kit de arrastre", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	lineID := po.Items[0].ID

	updated, err := f.uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{
		Items: []dto.PurchaseOrderItemRequest{
			{ID: lineID, Description: "Kit de arrastre", Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, lineID, updated.Items[0].ID)
	assert.Equal(t, 5, updated.Items[0].Quantity)
}

// Con una recepción registrada contra la orden, las líneas quedan bloqueadas:
// el acumulado recibido vs. ordenado se calcula sobre ellas. Los metadatos
// siguen siendo actualizables si el caller reenvía las líneas sin cambios.
func TestPurchaseOrderUpdate_LineasBloqueadasConRecepcion(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()

	po, err := f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Status:     entity.POStatusApproved,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Bujía", Quantity: 20, UnitPrice: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, f.store.GoodsReceipts().Create(&entity.GoodsReceipt{
		ID:              "gr-1",
		ReceiptNumber:   "GR-1",
		PurchaseOrderID: po.ID,
		SupplierID:      f.supplier.ID,
		Status:          entity.ReceiptStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}))

	_, err = f.uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{
		Items: []dto.PurchaseOrderItemRequest{
			{ID: po.Items[0].ID, Description: "Bujía", Quantity: 99, UnitPrice: decimal.NewFromInt(8)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "cambiar cantidad con recepción registrada")

	updated, err := f.uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{
		Items: []dto.PurchaseOrderItemRequest{
			{ID: po.Items[0].ID, Description: "Bujía", Quantity: 20, UnitPrice: decimal.NewFromInt(8)},
		},
		Notes: "entrega parcial en camino",
	})
	require.NoError(t, err)
	assert.Equal(t, "entrega parcial en camino", updated.Notes)
	assert.Equal(t, po.Items[0].ID, updated.Items[0].ID)
}

// Una orden con recepción (parcial o total) no puede eliminarse.
func TestPurchaseOrderDelete_Guardas(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()

	po, err := f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{Description: "Cadena", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	// Simula el avance por recepción.
	po.Status = entity.POStatusPartiallyReceived
	require.NoError(t, f.store.PurchaseOrders().Update(po))
	assert.ErrorIs(t, f.uc.Delete(ctx, po.ID), domain.ErrConflict)

	po.Status = entity.POStatusApproved
	require.NoError(t, f.store.PurchaseOrders().Update(po))
	assert.NoError(t, f.uc.Delete(ctx, po.ID))
}

func TestPurchaseOrderList_FiltroPorProveedor(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()
	other := &entity.Supplier{ID: "sup-2", Name: "Otro", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, f.store.Suppliers().Create(other))

	_, err := f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Items:      []dto.PurchaseOrderItemRequest{{Description: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: other.ID,
		Items:      []dto.PurchaseOrderItemRequest{{Description: "B", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	all, err := f.uc.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.uc.List(ctx, other.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, other.ID, filtered[0].SupplierID)
}
