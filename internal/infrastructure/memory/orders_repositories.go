package memory

import (
	"sort"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// JobOrderRepo implementa repository.JobOrderRepository.
type JobOrderRepo struct {
	s    *Store
	lock bool
}

// JobOrders devuelve el repositorio de órdenes de trabajo con locking automático.
func (s *Store) JobOrders() repository.JobOrderRepository {
	return &JobOrderRepo{s: s, lock: true}
}

func (r *JobOrderRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *JobOrderRepo) Create(order *entity.JobOrder) error {
	defer r.acquire()()
	if _, ok := r.s.jobOrders[order.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.jobOrders[order.ID] = cloneJobOrder(order)
	return nil
}

func (r *JobOrderRepo) GetByID(id string) (*entity.JobOrder, error) {
	defer r.acquire()()
	j, ok := r.s.jobOrders[id]
	if !ok {
		return nil, nil
	}
	return cloneJobOrder(j), nil
}

func (r *JobOrderRepo) Update(order *entity.JobOrder) error {
	defer r.acquire()()
	if _, ok := r.s.jobOrders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.jobOrders[order.ID] = cloneJobOrder(order)
	return nil
}

func (r *JobOrderRepo) List(limit, offset int) ([]*entity.JobOrder, error) {
	defer r.acquire()()
	out := make([]*entity.JobOrder, 0, len(r.s.jobOrders))
	for _, j := range r.s.jobOrders {
		out = append(out, cloneJobOrder(j))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

func (r *JobOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.JobOrder, error) {
	defer r.acquire()()
	out := make([]*entity.JobOrder, 0)
	for _, j := range r.s.jobOrders {
		if j.CustomerID == customerID {
			out = append(out, cloneJobOrder(j))
		}
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

// SalesOrderRepo implementa repository.SalesOrderRepository.
type SalesOrderRepo struct {
	s    *Store
	lock bool
}

// SalesOrders devuelve el repositorio de ventas con locking automático.
func (s *Store) SalesOrders() repository.SalesOrderRepository {
	return &SalesOrderRepo{s: s, lock: true}
}

func (r *SalesOrderRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	defer r.acquire()()
	if _, ok := r.s.salesOrders[order.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.salesOrders[order.ID] = cloneSalesOrder(order)
	return nil
}

func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	defer r.acquire()()
	so, ok := r.s.salesOrders[id]
	if !ok {
		return nil, nil
	}
	return cloneSalesOrder(so), nil
}

func (r *SalesOrderRepo) Update(order *entity.SalesOrder) error {
	defer r.acquire()()
	if _, ok := r.s.salesOrders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.salesOrders[order.ID] = cloneSalesOrder(order)
	return nil
}

func (r *SalesOrderRepo) List(limit, offset int) ([]*entity.SalesOrder, error) {
	defer r.acquire()()
	out := make([]*entity.SalesOrder, 0, len(r.s.salesOrders))
	for _, so := range r.s.salesOrders {
		out = append(out, cloneSalesOrder(so))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

// PaymentRepo implementa repository.PaymentRepository. Los pagos son
// inmutables: no hay Update ni Delete.
type PaymentRepo struct {
	s    *Store
	lock bool
}

// Payments devuelve el repositorio de pagos con locking automático.
func (s *Store) Payments() repository.PaymentRepository {
	return &PaymentRepo{s: s, lock: true}
}

func (r *PaymentRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *PaymentRepo) Create(payment *entity.Payment) error {
	defer r.acquire()()
	if _, ok := r.s.payments[payment.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.payments[payment.ID] = clonePayment(payment)
	return nil
}

func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	defer r.acquire()()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	return clonePayment(p), nil
}

func (r *PaymentRepo) ListByOrder(orderID string) ([]*entity.Payment, error) {
	defer r.acquire()()
	out := make([]*entity.Payment, 0)
	for _, p := range r.s.payments {
		if p.OrderID == orderID {
			out = append(out, clonePayment(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return out, nil
}
