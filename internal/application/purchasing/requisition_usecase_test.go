package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/application/purchasing"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/infrastructure/memory"
)

func newRequisitionFixture(t *testing.T) (*purchasing.RequisitionUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return purchasing.NewRequisitionUseCase(store.Requisitions()), store
}

func createDraftRequisition(t *testing.T, uc *purchasing.RequisitionUseCase) *entity.PurchaseRequisition {
	t.Helper()
	req, err := uc.Create(context.Background(), "user-1", dto.CreateRequisitionRequest{
		Department: "Taller",
		Items: []dto.RequisitionItemRequest{
			{Description: "Filtro de aceite", Quantity: 10, EstimatedPricePerUnit: decimal.NewFromInt(20)},
			{Description: "Bujía NGK", Quantity: 4, EstimatedPricePerUnit: decimal.NewFromInt(15)},
		},
	})
	require.NoError(t, err)
	return req
}

func TestRequisitionCreate_TotalEstimado(t *testing.T) {
	uc, _ := newRequisitionFixture(t)

	req := createDraftRequisition(t, uc)
	assert.Equal(t, entity.RequisitionStatusDraft, req.Status)
	assert.Equal(t, "user-1", req.RequestedByUserID)
	// 10*20 + 4*15 = 260
	assert.True(t, req.TotalEstimatedValue.Equal(decimal.NewFromInt(260)),
		"total estimado: %s", req.TotalEstimatedValue)
}

func TestRequisitionCreate_SinItems(t *testing.T) {
	uc, _ := newRequisitionFixture(t)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateRequisitionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El total estimado se recalcula siempre desde los ítems vigentes.
func TestRequisitionUpdate_RecalculaTotal(t *testing.T) {
	uc, _ := newRequisitionFixture(t)
	req := createDraftRequisition(t, uc)

	updated, err := uc.Update(context.Background(), req.ID, dto.UpdateRequisitionRequest{
		Department: "Taller",
		Items: []dto.RequisitionItemRequest{
			{Description: "Filtro de aceite", Quantity: 2, EstimatedPricePerUnit: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalEstimatedValue.Equal(decimal.NewFromInt(40)))
	assert.Len(t, updated.Items, 1)
}

// Aprobar estampa aprobador y fecha; re-aprobar no sobreescribe la fecha.
func TestRequisitionTransition_AprobacionIdempotente(t *testing.T) {
	uc, _ := newRequisitionFixture(t)
	req := createDraftRequisition(t, uc)
	ctx := context.Background()

	approved, err := uc.TransitionStatus(ctx, req.ID, entity.RequisitionStatusApproved, "jefe-1")
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedDate)
	assert.Equal(t, "jefe-1", approved.ApprovedByUserID)
	firstStamp := *approved.ApprovedDate

	again, err := uc.TransitionStatus(ctx, req.ID, entity.RequisitionStatusApproved, "jefe-2")
	require.NoError(t, err)
	require.NotNil(t, again.ApprovedDate)
	assert.Equal(t, firstStamp, *again.ApprovedDate, "la fecha de aprobación no debe re-estamparse")
	assert.Equal(t, "jefe-1", again.ApprovedByUserID, "el aprobador original se conserva")
}

// Una requisición aprobada tiene los ítems bloqueados.
func TestRequisitionUpdate_ItemsBloqueadosTrasAprobar(t *testing.T) {
	uc, _ := newRequisitionFixture(t)
	req := createDraftRequisition(t, uc)
	ctx := context.Background()

	_, err := uc.TransitionStatus(ctx, req.ID, entity.RequisitionStatusApproved, "jefe-1")
	require.NoError(t, err)

	_, err = uc.Update(ctx, req.ID, dto.UpdateRequisitionRequest{
		Items: []dto.RequisitionItemRequest{{Description: "otro", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Ordered no es alcanzable vía transición directa: solo lo fija la creación de
// una orden de compra desde la requisición.
func TestRequisitionTransition_OrderedSoloViaOrdenDeCompra(t *testing.T) {
	uc, _ := newRequisitionFixture(t)
	req := createDraftRequisition(t, uc)
	ctx := context.Background()

	_, err := uc.TransitionStatus(ctx, req.ID, entity.RequisitionStatusApproved, "jefe-1")
	require.NoError(t, err)

	_, err = uc.TransitionStatus(ctx, req.ID, entity.RequisitionStatusOrdered, "jefe-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Los estados terminales no admiten transiciones de salida y una aprobada no
// vuelve a revisión.
func TestRequisitionTransition_SinRetrocesos(t *testing.T) {
	uc, _ := newRequisitionFixture(t)
	ctx := context.Background()

	cancelled := createDraftRequisition(t, uc)
	_, err := uc.TransitionStatus(ctx, cancelled.ID, entity.RequisitionStatusCancelled, "jefe-1")
	require.NoError(t, err)
	_, err = uc.TransitionStatus(ctx, cancelled.ID, entity.RequisitionStatusPendingApproval, "jefe-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "Cancelled no vuelve a revisión")

	rejected := createDraftRequisition(t, uc)
	_, err = uc.TransitionStatus(ctx, rejected.ID, entity.RequisitionStatusRejected, "jefe-1")
	require.NoError(t, err)
	_, err = uc.TransitionStatus(ctx, rejected.ID, entity.RequisitionStatusApproved, "jefe-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "Rejected no puede aprobarse")

	approved := createDraftRequisition(t, uc)
	_, err = uc.TransitionStatus(ctx, approved.ID, entity.RequisitionStatusApproved, "jefe-1")
	require.NoError(t, err)
	_, err = uc.TransitionStatus(ctx, approved.ID, entity.RequisitionStatusDraft, "jefe-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "Approved no vuelve a borrador")

	// Reenviar el estado vigente sigue siendo un no-op válido.
	_, err = uc.TransitionStatus(ctx, approved.ID, entity.RequisitionStatusApproved, "jefe-2")
	assert.NoError(t, err)
}

func TestRequisitionTransition_EstadoDesconocido(t *testing.T) {
	uc, _ := newRequisitionFixture(t)
	req := createDraftRequisition(t, uc)

	_, err := uc.TransitionStatus(context.Background(), req.ID, "Archivada", "jefe-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequisitionDelete_Guardas(t *testing.T) {
	uc, _ := newRequisitionFixture(t)
	ctx := context.Background()

	// Draft se elimina sin problema.
	draft := createDraftRequisition(t, uc)
	require.NoError(t, uc.Delete(ctx, draft.ID))
	_, err := uc.GetByID(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Aprobada no puede eliminarse.
	approved := createDraftRequisition(t, uc)
	_, err = uc.TransitionStatus(ctx, approved.ID, entity.RequisitionStatusApproved, "jefe-1")
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Delete(ctx, approved.ID), domain.ErrConflict)

	// Rechazada sí puede eliminarse.
	rejected := createDraftRequisition(t, uc)
	_, err = uc.TransitionStatus(ctx, rejected.ID, entity.RequisitionStatusRejected, "jefe-1")
	require.NoError(t, err)
	assert.NoError(t, uc.Delete(ctx, rejected.ID))
}
