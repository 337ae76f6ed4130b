package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/inventory"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/infrastructure/memory"
	"github.com/jhoicas/TallerMotos-api/pkg/logger"
)

func newStockFixture(t *testing.T, initialStock int) (*inventory.StockUseCase, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	part := &entity.Part{
		ID:            "part-1",
		SKU:           "FIL-001",
		Name:          "Filtro de aceite",
		Price:         decimal.NewFromInt(25),
		StockQuantity: initialStock,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Parts().Create(part))
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := inventory.NewStockUseCase(memory.NewTxRunner(store), store.Parts(), log)
	return uc, store, part.ID
}

func TestStockAdjust_Credito(t *testing.T) {
	uc, _, partID := newStockFixture(t, 10)

	part, err := uc.Adjust(context.Background(), partID, 5, "recepción manual", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 15, part.StockQuantity)

	// El valor persistido coincide con el devuelto.
	stored, err := uc.Get(context.Background(), partID)
	require.NoError(t, err)
	assert.Equal(t, 15, stored.StockQuantity)
}

// Todo ajuste toca UpdatedAt en el registro persistido.
func TestStockAdjust_TocaUpdatedAt(t *testing.T) {
	uc, store, partID := newStockFixture(t, 10)

	before, err := store.Parts().GetByID(partID)
	require.NoError(t, err)

	_, err = uc.Adjust(context.Background(), partID, 5, "recepción manual", "user-1")
	require.NoError(t, err)

	stored, err := store.Parts().GetByID(partID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.After(before.UpdatedAt),
		"UpdatedAt persistido: antes %s, después %s", before.UpdatedAt, stored.UpdatedAt)
}

func TestStockAdjust_Debito(t *testing.T) {
	uc, _, partID := newStockFixture(t, 10)

	part, err := uc.Adjust(context.Background(), partID, -4, "venta mostrador", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 6, part.StockQuantity)
}

// El libro mayor nunca deja stock negativo: un débito mayor al disponible
// falla completo, sin aplicar parcialmente.
func TestStockAdjust_StockInsuficiente(t *testing.T) {
	uc, _, partID := newStockFixture(t, 3)

	_, err := uc.Adjust(context.Background(), partID, -5, "venta", "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, err := uc.Get(context.Background(), partID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.StockQuantity, "el stock no debe cambiar tras un débito rechazado")
}

// Débito exacto hasta cero es válido; el siguiente débito falla.
func TestStockAdjust_DebitoHastaCero(t *testing.T) {
	uc, _, partID := newStockFixture(t, 2)

	part, err := uc.Adjust(context.Background(), partID, -2, "venta", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, part.StockQuantity)

	_, err = uc.Adjust(context.Background(), partID, -1, "venta", "user-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestStockAdjust_DeltaCeroInvalido(t *testing.T) {
	uc, _, partID := newStockFixture(t, 10)

	_, err := uc.Adjust(context.Background(), partID, 0, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockAdjust_RepuestoInexistente(t *testing.T) {
	uc, _, _ := newStockFixture(t, 10)

	_, err := uc.Adjust(context.Background(), "no-existe", 1, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustFromRequest_AddYRemove(t *testing.T) {
	uc, _, partID := newStockFixture(t, 10)
	ctx := context.Background()

	part, err := uc.AdjustFromRequest(ctx, partID, "user-1", dto.AdjustStockRequest{
		Adjustment: dto.StockAdjustmentAdd,
		Quantity:   7,
		Reason:     "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 17, part.StockQuantity)

	part, err = uc.AdjustFromRequest(ctx, partID, "user-1", dto.AdjustStockRequest{
		Adjustment: dto.StockAdjustmentRemove,
		Quantity:   2,
		Reason:     "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, part.StockQuantity)
}

func TestAdjustFromRequest_Invalido(t *testing.T) {
	uc, _, partID := newStockFixture(t, 10)
	ctx := context.Background()

	_, err := uc.AdjustFromRequest(ctx, partID, "user-1", dto.AdjustStockRequest{
		Adjustment: dto.StockAdjustmentAdd,
		Quantity:   0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.AdjustFromRequest(ctx, partID, "user-1", dto.AdjustStockRequest{
		Adjustment: "SET",
		Quantity:   5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de ajuste desconocido")
}

// La razón del ajuste solo se registra en el log: el repuesto no la persiste.
func TestAdjust_RazonNoPersistida(t *testing.T) {
	uc, store, partID := newStockFixture(t, 10)

	_, err := uc.Adjust(context.Background(), partID, 1, "razón solo informativa", "user-1")
	require.NoError(t, err)

	stored, err := store.Parts().GetByID(partID)
	require.NoError(t, err)
	// Part no tiene campo de razón: verificamos que el resto del documento
	// quedó intacto además del stock.
	assert.Equal(t, "FIL-001", stored.SKU)
	assert.Equal(t, 11, stored.StockQuantity)
}
