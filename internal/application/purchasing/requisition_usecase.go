package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// RequisitionUseCase maneja el ciclo de vida de las requisiciones de compra:
// Draft/PendingApproval -> Approved/Rejected -> Ordered (solo vía creación de
// una orden de compra) o Cancelled.
type RequisitionUseCase struct {
	requisitionRepo repository.RequisitionRepository
}

// NewRequisitionUseCase construye el caso de uso.
func NewRequisitionUseCase(requisitionRepo repository.RequisitionRepository) *RequisitionUseCase {
	return &RequisitionUseCase{requisitionRepo: requisitionRepo}
}

// Create crea una requisición en Draft con el total estimado calculado.
func (uc *RequisitionUseCase) Create(ctx context.Context, userID string, in dto.CreateRequisitionRequest) (*entity.PurchaseRequisition, error) {
	items, err := requisitionItemsFromRequest(in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	req := &entity.PurchaseRequisition{
		ID:                uuid.New().String(),
		RequestedByUserID: userID,
		Department:        in.Department,
		Status:            entity.RequisitionStatusDraft,
		Items:             items,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	req.TotalEstimatedValue = req.ComputeTotalEstimatedValue()
	if err := uc.requisitionRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Update reemplaza ítems y notas. El total estimado se recalcula siempre desde
// los ítems vigentes (cualquier total enviado por el caller se ignora). Los
// ítems quedan bloqueados cuando el documento salió de Draft/PendingApproval.
func (uc *RequisitionUseCase) Update(ctx context.Context, id string, in dto.UpdateRequisitionRequest) (*entity.PurchaseRequisition, error) {
	req, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	if req.ItemsLocked() {
		return nil, fmt.Errorf("%w: la requisición en estado %s no admite edición de ítems", domain.ErrConflict, req.Status)
	}
	items, err := requisitionItemsFromRequest(in.Items)
	if err != nil {
		return nil, err
	}
	req.Department = in.Department
	req.Notes = in.Notes
	req.Items = items
	req.TotalEstimatedValue = req.ComputeTotalEstimatedValue()
	req.UpdatedAt = time.Now()
	if err := uc.requisitionRepo.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}

// requisitionTransitions define el ciclo de vida hacia adelante: Rejected,
// Cancelled y Ordered son terminales y una requisición aprobada no vuelve a
// borrador. Un borrador puede aprobarse o rechazarse directo, sin pasar por
// PendingApproval. Ordered no aparece como destino porque solo lo fija la
// creación de una orden de compra.
var requisitionTransitions = map[string][]string{
	entity.RequisitionStatusDraft: {
		entity.RequisitionStatusPendingApproval, entity.RequisitionStatusApproved,
		entity.RequisitionStatusRejected, entity.RequisitionStatusCancelled,
	},
	entity.RequisitionStatusPendingApproval: {
		entity.RequisitionStatusApproved, entity.RequisitionStatusRejected,
		entity.RequisitionStatusCancelled,
	},
	entity.RequisitionStatusApproved: {entity.RequisitionStatusCancelled},
}

func requisitionTransitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range requisitionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionStatus mueve la requisición a newStatus siguiendo el ciclo de
// vida hacia adelante (reenviar el estado actual es un no-op válido). Aprobar
// estampa ApprovedByUserID/ApprovedDate una sola vez (idempotente: una fecha
// de aprobación existente no se sobreescribe). Ordered no es alcanzable por
// esta vía: solo lo fija la creación de una orden de compra.
func (uc *RequisitionUseCase) TransitionStatus(ctx context.Context, id, newStatus, approverID string) (*entity.PurchaseRequisition, error) {
	req, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	switch newStatus {
	case entity.RequisitionStatusDraft, entity.RequisitionStatusPendingApproval,
		entity.RequisitionStatusApproved, entity.RequisitionStatusRejected,
		entity.RequisitionStatusCancelled:
	case entity.RequisitionStatusOrdered:
		if req.Status != entity.RequisitionStatusOrdered {
			return nil, fmt.Errorf("%w: Ordered solo se fija al crear una orden de compra desde la requisición", domain.ErrConflict)
		}
	default:
		return nil, fmt.Errorf("%w: estado de requisición %q desconocido", domain.ErrInvalidInput, newStatus)
	}
	if !requisitionTransitionAllowed(req.Status, newStatus) {
		return nil, fmt.Errorf("%w: la requisición en estado %s no puede pasar a %s", domain.ErrConflict, req.Status, newStatus)
	}
	if newStatus == entity.RequisitionStatusApproved && req.ApprovedDate == nil {
		now := time.Now()
		req.ApprovedByUserID = approverID
		req.ApprovedDate = &now
	}
	req.Status = newStatus
	req.UpdatedAt = time.Now()
	if err := uc.requisitionRepo.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}

// GetByID devuelve la requisición completa.
func (uc *RequisitionUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseRequisition, error) {
	return uc.getExisting(id)
}

// List devuelve una página de requisiciones.
func (uc *RequisitionUseCase) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequisition, error) {
	return uc.requisitionRepo.List(limit, offset)
}

// Delete elimina una requisición que aún no fue aprobada ni ordenada.
func (uc *RequisitionUseCase) Delete(ctx context.Context, id string) error {
	req, err := uc.getExisting(id)
	if err != nil {
		return err
	}
	switch req.Status {
	case entity.RequisitionStatusApproved, entity.RequisitionStatusOrdered:
		return fmt.Errorf("%w: la requisición en estado %s no puede eliminarse", domain.ErrConflict, req.Status)
	}
	return uc.requisitionRepo.Delete(id)
}

func (uc *RequisitionUseCase) getExisting(id string) (*entity.PurchaseRequisition, error) {
	req, err := uc.requisitionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: requisición %s", domain.ErrNotFound, id)
	}
	return req, nil
}

func requisitionItemsFromRequest(in []dto.RequisitionItemRequest) ([]entity.PurchaseRequisitionItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: la requisición requiere al menos un ítem", domain.ErrInvalidInput)
	}
	items := make([]entity.PurchaseRequisitionItem, 0, len(in))
	for i, item := range in {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: ítem %d con cantidad %d", domain.ErrInvalidInput, i, item.Quantity)
		}
		if item.EstimatedPricePerUnit.IsNegative() {
			return nil, fmt.Errorf("%w: ítem %d con precio estimado negativo", domain.ErrInvalidInput, i)
		}
		items = append(items, entity.PurchaseRequisitionItem{
			ID:                    uuid.New().String(),
			Description:           item.Description,
			PartID:                item.PartID,
			Quantity:              item.Quantity,
			EstimatedPricePerUnit: item.EstimatedPricePerUnit,
		})
	}
	return items, nil
}
