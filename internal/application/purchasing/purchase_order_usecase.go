package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	domainpurchasing "github.com/jhoicas/TallerMotos-api/internal/domain/purchasing"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// PurchaseOrderUseCase maneja las órdenes de compra contra proveedores.
// SubTotal, TaxAmount y GrandTotal son derivados y se recalculan en cada
// escritura desde la lista de ítems vigente.
type PurchaseOrderUseCase struct {
	txRunner        TxRunner
	poRepo          repository.PurchaseOrderRepository
	supplierRepo    repository.SupplierRepository
	receiptRepo     repository.GoodsReceiptRepository
	fallbackTaxRate decimal.Decimal
}

// NewPurchaseOrderUseCase construye el caso de uso. fallbackTaxRate es la tasa
// porcentual plana aplicada cuando el caller no envía impuesto explícito
// (configuración del taller, distinta de la regla usada por ventas); cero es
// una tasa válida y significa compras sin impuesto.
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	receiptRepo repository.GoodsReceiptRepository,
	fallbackTaxRate decimal.Decimal,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:        txRunner,
		poRepo:          poRepo,
		supplierRepo:    supplierRepo,
		receiptRepo:     receiptRepo,
		fallbackTaxRate: fallbackTaxRate,
	}
}

// Create valida ítems, deriva totales y persiste la orden. Si viene de una
// requisición, la requisición pasa a Ordered en la misma transacción.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if in.SupplierID == "" {
		return nil, fmt.Errorf("%w: la orden de compra requiere proveedor", domain.ErrInvalidInput)
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}
	items, err := orderItemsFromRequest(in.Items)
	if err != nil {
		return nil, err
	}
	if in.ShippingCost.IsNegative() {
		return nil, fmt.Errorf("%w: costo de envío negativo", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.POStatusDraft
	}
	if !validPOStatus(status) {
		return nil, fmt.Errorf("%w: estado de orden de compra %q desconocido", domain.ErrInvalidInput, status)
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:                    uuid.New().String(),
		OrderNumber:           fmt.Sprintf("PO-%d", now.Unix()),
		SupplierID:            in.SupplierID,
		PurchaseRequisitionID: in.PurchaseRequisitionID,
		Status:                status,
		Items:                 items,
		ShippingCost:          in.ShippingCost,
		ExpectedDeliveryDate:  in.ExpectedDeliveryDate,
		Notes:                 in.Notes,
		CreatedByUserID:       userID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	po.SubTotal, po.TaxAmount, po.GrandTotal = domainpurchasing.OrderTotals(items, in.TaxAmount, in.ShippingCost, uc.fallbackTaxRate)

	err = uc.txRunner.RunPurchasing(ctx, func(
		_ repository.PartRepository,
		requisitionRepo repository.RequisitionRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.GoodsReceiptRepository,
	) error {
		if po.PurchaseRequisitionID != "" {
			req, err := requisitionRepo.GetByID(po.PurchaseRequisitionID)
			if err != nil {
				return err
			}
			if req == nil {
				return fmt.Errorf("%w: requisición %s", domain.ErrNotFound, po.PurchaseRequisitionID)
			}
			if req.Status != entity.RequisitionStatusApproved {
				return fmt.Errorf("%w: la requisición %s está en %s, debe estar Approved para ordenarse",
					domain.ErrConflict, req.ID, req.Status)
			}
			req.Status = entity.RequisitionStatusOrdered
			req.UpdatedAt = now
			if err := requisitionRepo.Update(req); err != nil {
				return err
			}
		}
		return poRepo.Create(po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Update reemplaza ítems y metadatos y rederiva SubTotal/TaxAmount/GrandTotal
// desde la lista de ítems vigente; los totales enviados por el caller se
// ignoran. Una vez que existe una recepción contra la orden, las líneas
// quedan bloqueadas: las recepciones las referencian por id y el acumulado
// recibido vs. ordenado se calcula sobre ellas.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	po, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	items, err := orderItemsFromRequest(in.Items)
	if err != nil {
		return nil, err
	}
	receipts, err := uc.receiptRepo.ListByPurchaseOrder(po.ID)
	if err != nil {
		return nil, err
	}
	if len(receipts) > 0 && !sameOrderItems(po.Items, items) {
		return nil, fmt.Errorf("%w: la orden %s ya tiene recepciones, sus líneas no pueden modificarse", domain.ErrConflict, po.ID)
	}
	if in.ShippingCost.IsNegative() {
		return nil, fmt.Errorf("%w: costo de envío negativo", domain.ErrInvalidInput)
	}
	if in.Status != "" {
		if !validPOStatus(in.Status) {
			return nil, fmt.Errorf("%w: estado de orden de compra %q desconocido", domain.ErrInvalidInput, in.Status)
		}
		po.Status = in.Status
	}
	po.Items = items
	po.ShippingCost = in.ShippingCost
	po.ExpectedDeliveryDate = in.ExpectedDeliveryDate
	po.Notes = in.Notes
	po.SubTotal, po.TaxAmount, po.GrandTotal = domainpurchasing.OrderTotals(items, in.TaxAmount, in.ShippingCost, uc.fallbackTaxRate)
	po.UpdatedAt = time.Now()
	if err := uc.poRepo.Update(po); err != nil {
		return nil, err
	}
	return po, nil
}

// Delete elimina la orden salvo que ya tenga recepción parcial o total.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string) error {
	po, err := uc.getExisting(id)
	if err != nil {
		return err
	}
	if !po.Deletable() {
		return fmt.Errorf("%w: la orden en estado %s no puede eliminarse", domain.ErrConflict, po.Status)
	}
	return uc.poRepo.Delete(id)
}

// GetByID devuelve la orden completa.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return uc.getExisting(id)
}

// List devuelve una página de órdenes, opcionalmente filtrada por proveedor.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if supplierID != "" {
		return uc.poRepo.ListBySupplier(supplierID, limit, offset)
	}
	return uc.poRepo.List(limit, offset)
}

func (uc *PurchaseOrderUseCase) getExisting(id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
	}
	return po, nil
}

// sameOrderItems compara las líneas por id, cantidad y precio unitario, en
// orden. Es la igualdad que protege el acumulado recibido de las recepciones.
func sameOrderItems(current, incoming []entity.PurchaseOrderItem) bool {
	if len(current) != len(incoming) {
		return false
	}
	for i := range current {
		if current[i].ID != incoming[i].ID ||
			current[i].Quantity != incoming[i].Quantity ||
			!current[i].UnitPrice.Equal(incoming[i].UnitPrice) {
			return false
		}
	}
	return true
}

func validPOStatus(status string) bool {
	switch status {
	case entity.POStatusDraft, entity.POStatusPendingApproval, entity.POStatusApproved,
		entity.POStatusPartiallyReceived, entity.POStatusFullyReceived,
		entity.POStatusClosed, entity.POStatusCancelled:
		return true
	}
	return false
}

// orderItemsFromRequest convierte y valida las líneas: total calculado cuando
// no viene, y verificación TotalPrice == Quantity * UnitPrice cuando viene.
// Un ID enviado por el caller conserva la identidad de la línea entre
// actualizaciones (las recepciones la referencian).
func orderItemsFromRequest(in []dto.PurchaseOrderItemRequest) ([]entity.PurchaseOrderItem, error) {
	items := make([]entity.PurchaseOrderItem, 0, len(in))
	for _, item := range in {
		id := item.ID
		if id == "" {
			id = uuid.New().String()
		}
		line := entity.PurchaseOrderItem{
			ID:          id,
			Description: item.Description,
			PartID:      item.PartID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		if item.TotalPrice != nil {
			line.TotalPrice = *item.TotalPrice
		} else {
			line.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		items = append(items, line)
	}
	if err := domainpurchasing.ValidateOrderItems(items); err != nil {
		return nil, err
	}
	return items, nil
}
