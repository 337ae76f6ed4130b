package repository

import "github.com/jhoicas/TallerMotos-api/internal/domain/entity"

// RequisitionRepository define el puerto de persistencia para PurchaseRequisition
// con sus ítems embebidos (documento completo en cada operación).
type RequisitionRepository interface {
	Create(requisition *entity.PurchaseRequisition) error
	GetByID(id string) (*entity.PurchaseRequisition, error)
	Update(requisition *entity.PurchaseRequisition) error
	List(limit, offset int) ([]*entity.PurchaseRequisition, error)
	Delete(id string) error
}

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	Update(po *entity.PurchaseOrder) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	Delete(id string) error
}

// GoodsReceiptRepository define el puerto de persistencia para GoodsReceipt.
type GoodsReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt) error
	GetByID(id string) (*entity.GoodsReceipt, error)
	Update(receipt *entity.GoodsReceipt) error
	List(limit, offset int) ([]*entity.GoodsReceipt, error)
	ListByPurchaseOrder(purchaseOrderID string) ([]*entity.GoodsReceipt, error)
}
