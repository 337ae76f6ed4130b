package memory

import (
	"sort"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// RequisitionRepo implementa repository.RequisitionRepository.
type RequisitionRepo struct {
	s    *Store
	lock bool
}

// Requisitions devuelve el repositorio de requisiciones con locking automático.
func (s *Store) Requisitions() repository.RequisitionRepository {
	return &RequisitionRepo{s: s, lock: true}
}

func (r *RequisitionRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *RequisitionRepo) Create(requisition *entity.PurchaseRequisition) error {
	defer r.acquire()()
	if _, ok := r.s.requisitions[requisition.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.requisitions[requisition.ID] = cloneRequisition(requisition)
	return nil
}

func (r *RequisitionRepo) GetByID(id string) (*entity.PurchaseRequisition, error) {
	defer r.acquire()()
	req, ok := r.s.requisitions[id]
	if !ok {
		return nil, nil
	}
	return cloneRequisition(req), nil
}

func (r *RequisitionRepo) Update(requisition *entity.PurchaseRequisition) error {
	defer r.acquire()()
	if _, ok := r.s.requisitions[requisition.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.requisitions[requisition.ID] = cloneRequisition(requisition)
	return nil
}

func (r *RequisitionRepo) List(limit, offset int) ([]*entity.PurchaseRequisition, error) {
	defer r.acquire()()
	out := make([]*entity.PurchaseRequisition, 0, len(r.s.requisitions))
	for _, req := range r.s.requisitions {
		out = append(out, cloneRequisition(req))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

func (r *RequisitionRepo) Delete(id string) error {
	defer r.acquire()()
	if _, ok := r.s.requisitions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.requisitions, id)
	return nil
}

// PurchaseOrderRepo implementa repository.PurchaseOrderRepository.
type PurchaseOrderRepo struct {
	s    *Store
	lock bool
}

// PurchaseOrders devuelve el repositorio de órdenes de compra con locking automático.
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository {
	return &PurchaseOrderRepo{s: s, lock: true}
}

func (r *PurchaseOrderRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	defer r.acquire()()
	if _, ok := r.s.purchaseOrders[po.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.purchaseOrders[po.ID] = clonePurchaseOrder(po)
	return nil
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	defer r.acquire()()
	po, ok := r.s.purchaseOrders[id]
	if !ok {
		return nil, nil
	}
	return clonePurchaseOrder(po), nil
}

func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	defer r.acquire()()
	if _, ok := r.s.purchaseOrders[po.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.purchaseOrders[po.ID] = clonePurchaseOrder(po)
	return nil
}

func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.acquire()()
	out := make([]*entity.PurchaseOrder, 0, len(r.s.purchaseOrders))
	for _, po := range r.s.purchaseOrders {
		out = append(out, clonePurchaseOrder(po))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

func (r *PurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.acquire()()
	out := make([]*entity.PurchaseOrder, 0)
	for _, po := range r.s.purchaseOrders {
		if po.SupplierID == supplierID {
			out = append(out, clonePurchaseOrder(po))
		}
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

func (r *PurchaseOrderRepo) Delete(id string) error {
	defer r.acquire()()
	if _, ok := r.s.purchaseOrders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.purchaseOrders, id)
	return nil
}

// GoodsReceiptRepo implementa repository.GoodsReceiptRepository.
type GoodsReceiptRepo struct {
	s    *Store
	lock bool
}

// GoodsReceipts devuelve el repositorio de recepciones con locking automático.
func (s *Store) GoodsReceipts() repository.GoodsReceiptRepository {
	return &GoodsReceiptRepo{s: s, lock: true}
}

func (r *GoodsReceiptRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	defer r.acquire()()
	if _, ok := r.s.goodsReceipts[receipt.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.goodsReceipts[receipt.ID] = cloneGoodsReceipt(receipt)
	return nil
}

func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	defer r.acquire()()
	gr, ok := r.s.goodsReceipts[id]
	if !ok {
		return nil, nil
	}
	return cloneGoodsReceipt(gr), nil
}

func (r *GoodsReceiptRepo) Update(receipt *entity.GoodsReceipt) error {
	defer r.acquire()()
	if _, ok := r.s.goodsReceipts[receipt.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.goodsReceipts[receipt.ID] = cloneGoodsReceipt(receipt)
	return nil
}

func (r *GoodsReceiptRepo) List(limit, offset int) ([]*entity.GoodsReceipt, error) {
	defer r.acquire()()
	out := make([]*entity.GoodsReceipt, 0, len(r.s.goodsReceipts))
	for _, gr := range r.s.goodsReceipts {
		out = append(out, cloneGoodsReceipt(gr))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

func (r *GoodsReceiptRepo) ListByPurchaseOrder(purchaseOrderID string) ([]*entity.GoodsReceipt, error) {
	defer r.acquire()()
	out := make([]*entity.GoodsReceipt, 0)
	for _, gr := range r.s.goodsReceipts {
		if gr.PurchaseOrderID == purchaseOrderID {
			out = append(out, cloneGoodsReceipt(gr))
		}
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return out, nil
}
