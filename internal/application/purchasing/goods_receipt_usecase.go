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

// GoodsReceiptUseCase registra entregas contra órdenes de compra. Al pasar a
// Completed acredita el inventario exactamente una vez por recepción y avanza
// la orden a PartiallyReceived o FullyReceived según lo acumulado recibido.
//
// La transición inversa (Completed -> otro estado) NO revierte stock: el
// material puede ya estar consumido por órdenes de trabajo. Limitación
// deliberada, no un bug.
type GoodsReceiptUseCase struct {
	txRunner    TxRunner
	inventoryUC InventoryUseCase
	receiptRepo repository.GoodsReceiptRepository
	poRepo      repository.PurchaseOrderRepository
}

// NewGoodsReceiptUseCase construye el caso de uso.
func NewGoodsReceiptUseCase(
	txRunner TxRunner,
	inventoryUC InventoryUseCase,
	receiptRepo repository.GoodsReceiptRepository,
	poRepo repository.PurchaseOrderRepository,
) *GoodsReceiptUseCase {
	return &GoodsReceiptUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		receiptRepo: receiptRepo,
		poRepo:      poRepo,
	}
}

// Create persiste la recepción. Si nace en Completed, acredita stock y avanza
// la orden de compra en la misma transacción.
func (uc *GoodsReceiptUseCase) Create(ctx context.Context, userID string, in dto.CreateGoodsReceiptRequest) (*entity.GoodsReceipt, error) {
	if in.PurchaseOrderID == "" {
		return nil, fmt.Errorf("%w: la recepción requiere orden de compra", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.ReceiptStatusPending
	}
	if !validReceiptStatus(status) {
		return nil, fmt.Errorf("%w: estado de recepción %q desconocido", domain.ErrInvalidInput, status)
	}

	var receipt *entity.GoodsReceipt
	err := uc.txRunner.RunPurchasing(ctx, func(
		partRepo repository.PartRepository,
		_ repository.RequisitionRepository,
		poRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
	) error {
		po, err := poRepo.GetByID(in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, in.PurchaseOrderID)
		}
		if po.Status == entity.POStatusCancelled {
			return fmt.Errorf("%w: la orden %s está cancelada", domain.ErrConflict, po.ID)
		}
		items, err := receiptItemsFromRequest(po, in.Items)
		if err != nil {
			return err
		}
		now := time.Now()
		receipt = &entity.GoodsReceipt{
			ID:               uuid.New().String(),
			ReceiptNumber:    fmt.Sprintf("GR-%d", now.Unix()),
			PurchaseOrderID:  po.ID,
			SupplierID:       po.SupplierID,
			Status:           status,
			Items:            items,
			ReceivedDate:     in.ReceivedDate,
			ReceivedByUserID: userID,
			Notes:            in.Notes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if status == entity.ReceiptStatusCompleted {
			if err := uc.creditAndAdvance(partRepo, poRepo, receiptRepo, receipt, po, now); err != nil {
				return err
			}
		}
		return receiptRepo.Create(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Update aplica cambios a la recepción. El crédito de inventario ocurre
// exactamente una vez, en la transición hacia Completed: guardados repetidos
// de una recepción ya completada no vuelven a acreditar.
func (uc *GoodsReceiptUseCase) Update(ctx context.Context, id string, in dto.UpdateGoodsReceiptRequest) (*entity.GoodsReceipt, error) {
	if !validReceiptStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado de recepción %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	var receipt *entity.GoodsReceipt
	err := uc.txRunner.RunPurchasing(ctx, func(
		partRepo repository.PartRepository,
		_ repository.RequisitionRepository,
		poRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
	) error {
		var err error
		receipt, err = receiptRepo.GetByID(id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
		}
		po, err := poRepo.GetByID(receipt.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, receipt.PurchaseOrderID)
		}

		now := time.Now()
		if len(in.Items) > 0 {
			if receipt.StockCredited {
				return fmt.Errorf("%w: los ítems de una recepción ya acreditada no admiten edición", domain.ErrConflict)
			}
			items, err := receiptItemsFromRequest(po, in.Items)
			if err != nil {
				return err
			}
			receipt.Items = items
		}
		if in.ReceivedDate != nil {
			receipt.ReceivedDate = in.ReceivedDate
		}
		receipt.Notes = in.Notes

		becameCompleted := receipt.Status != entity.ReceiptStatusCompleted && in.Status == entity.ReceiptStatusCompleted
		receipt.Status = in.Status
		receipt.UpdatedAt = now

		// Crédito solo en la transición hacia Completed y solo si nunca se
		// acreditó; la salida de Completed no debita (forward-only).
		if becameCompleted && !receipt.StockCredited {
			if err := uc.creditAndAdvance(partRepo, poRepo, receiptRepo, receipt, po, now); err != nil {
				return err
			}
		}
		return receiptRepo.Update(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetByID devuelve la recepción completa.
func (uc *GoodsReceiptUseCase) GetByID(ctx context.Context, id string) (*entity.GoodsReceipt, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
	}
	return receipt, nil
}

// List devuelve una página de recepciones.
func (uc *GoodsReceiptUseCase) List(ctx context.Context, limit, offset int) ([]*entity.GoodsReceipt, error) {
	return uc.receiptRepo.List(limit, offset)
}

// creditAndAdvance acredita cada línea recibida al stock del repuesto, marca
// la recepción como acreditada y avanza la orden según lo acumulado recibido
// en todas sus recepciones completadas.
func (uc *GoodsReceiptUseCase) creditAndAdvance(
	partRepo repository.PartRepository,
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	receipt *entity.GoodsReceipt,
	po *entity.PurchaseOrder,
	now time.Time,
) error {
	for _, item := range receipt.Items {
		if item.PartID == "" || item.QuantityReceived == 0 {
			continue
		}
		if err := uc.inventoryUC.CreditInTx(partRepo, item.PartID, item.QuantityReceived, now); err != nil {
			return err
		}
	}
	receipt.StockCredited = true

	// Acumulado recibido por línea de la orden, contando esta recepción.
	received := make(map[string]int)
	prior, err := receiptRepo.ListByPurchaseOrder(po.ID)
	if err != nil {
		return err
	}
	for _, r := range prior {
		if r.ID == receipt.ID || !r.StockCredited {
			continue
		}
		for _, it := range r.Items {
			received[it.PurchaseOrderItemID] += it.QuantityReceived
		}
	}
	for _, it := range receipt.Items {
		received[it.PurchaseOrderItemID] += it.QuantityReceived
	}

	fully := true
	for _, it := range po.Items {
		if received[it.ID] < it.Quantity {
			fully = false
			break
		}
	}
	if fully {
		po.Status = entity.POStatusFullyReceived
	} else {
		po.Status = entity.POStatusPartiallyReceived
	}
	po.UpdatedAt = now
	return poRepo.Update(po)
}

func validReceiptStatus(status string) bool {
	switch status {
	case entity.ReceiptStatusPending, entity.ReceiptStatusPartial,
		entity.ReceiptStatusCompleted, entity.ReceiptStatusCancelled:
		return true
	}
	return false
}

// receiptItemsFromRequest resuelve cada línea contra la línea correspondiente
// de la orden y valida QuantityReceived <= QuantityOrdered.
func receiptItemsFromRequest(po *entity.PurchaseOrder, in []dto.GoodsReceiptItemRequest) ([]entity.GoodsReceiptItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: la recepción requiere al menos un ítem", domain.ErrInvalidInput)
	}
	poItems := make(map[string]entity.PurchaseOrderItem, len(po.Items))
	for _, it := range po.Items {
		poItems[it.ID] = it
	}
	items := make([]entity.GoodsReceiptItem, 0, len(in))
	for i, item := range in {
		poItem, ok := poItems[item.PurchaseOrderItemID]
		if !ok {
			return nil, fmt.Errorf("%w: la línea %s no pertenece a la orden %s", domain.ErrNotFound, item.PurchaseOrderItemID, po.ID)
		}
		if item.QuantityReceived < 0 {
			return nil, fmt.Errorf("%w: ítem %d con cantidad recibida negativa", domain.ErrInvalidInput, i)
		}
		if item.QuantityReceived > poItem.Quantity {
			return nil, fmt.Errorf("%w: ítem %d recibe %d pero la orden pide %d",
				domain.ErrInvalidInput, i, item.QuantityReceived, poItem.Quantity)
		}
		partID := item.PartID
		if partID == "" {
			partID = poItem.PartID
		}
		items = append(items, entity.GoodsReceiptItem{
			ID:                  uuid.New().String(),
			PurchaseOrderItemID: item.PurchaseOrderItemID,
			PartID:              partID,
			QuantityOrdered:     poItem.Quantity,
			QuantityReceived:    item.QuantityReceived,
		})
	}
	return items, nil
}
