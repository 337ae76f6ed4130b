// Package memory implementa los repositorios del dominio sobre mapas en
// memoria protegidos por un único mutex. Se usa en tests y en el modo
// APP_STORAGE=memory (demo sin base de datos). La transaccionalidad se
// consigue con snapshot/restore del estado completo: si la función de la
// transacción falla, el store vuelve al estado previo.
package memory

import (
	"sync"

	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// Store contiene el estado completo en memoria.
type Store struct {
	mu sync.Mutex

	parts          map[string]*entity.Part
	suppliers      map[string]*entity.Supplier
	customers      map[string]*entity.Customer
	motorcycles    map[string]*entity.Motorcycle
	users          map[string]*entity.User
	requisitions   map[string]*entity.PurchaseRequisition
	purchaseOrders map[string]*entity.PurchaseOrder
	goodsReceipts  map[string]*entity.GoodsReceipt
	jobOrders      map[string]*entity.JobOrder
	salesOrders    map[string]*entity.SalesOrder
	payments       map[string]*entity.Payment
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		parts:          make(map[string]*entity.Part),
		suppliers:      make(map[string]*entity.Supplier),
		customers:      make(map[string]*entity.Customer),
		motorcycles:    make(map[string]*entity.Motorcycle),
		users:          make(map[string]*entity.User),
		requisitions:   make(map[string]*entity.PurchaseRequisition),
		purchaseOrders: make(map[string]*entity.PurchaseOrder),
		goodsReceipts:  make(map[string]*entity.GoodsReceipt),
		jobOrders:      make(map[string]*entity.JobOrder),
		salesOrders:    make(map[string]*entity.SalesOrder),
		payments:       make(map[string]*entity.Payment),
	}
}

// snapshot clona el estado completo. Solo llamar con el mutex tomado.
func (s *Store) snapshot() *Store {
	snap := NewStore()
	for k, v := range s.parts {
		snap.parts[k] = clonePart(v)
	}
	for k, v := range s.suppliers {
		snap.suppliers[k] = cloneSupplier(v)
	}
	for k, v := range s.customers {
		snap.customers[k] = cloneCustomer(v)
	}
	for k, v := range s.motorcycles {
		snap.motorcycles[k] = cloneMotorcycle(v)
	}
	for k, v := range s.users {
		snap.users[k] = cloneUser(v)
	}
	for k, v := range s.requisitions {
		snap.requisitions[k] = cloneRequisition(v)
	}
	for k, v := range s.purchaseOrders {
		snap.purchaseOrders[k] = clonePurchaseOrder(v)
	}
	for k, v := range s.goodsReceipts {
		snap.goodsReceipts[k] = cloneGoodsReceipt(v)
	}
	for k, v := range s.jobOrders {
		snap.jobOrders[k] = cloneJobOrder(v)
	}
	for k, v := range s.salesOrders {
		snap.salesOrders[k] = cloneSalesOrder(v)
	}
	for k, v := range s.payments {
		snap.payments[k] = clonePayment(v)
	}
	return snap
}

// restore reemplaza el estado por el del snapshot. Solo con el mutex tomado.
func (s *Store) restore(snap *Store) {
	s.parts = snap.parts
	s.suppliers = snap.suppliers
	s.customers = snap.customers
	s.motorcycles = snap.motorcycles
	s.users = snap.users
	s.requisitions = snap.requisitions
	s.purchaseOrders = snap.purchaseOrders
	s.goodsReceipts = snap.goodsReceipts
	s.jobOrders = snap.jobOrders
	s.salesOrders = snap.salesOrders
	s.payments = snap.payments
}

// Clones: los repos guardan y devuelven copias para que el caller nunca
// comparta memoria con el store (mismo contrato que un repo de DB).

func clonePart(p *entity.Part) *entity.Part {
	v := *p
	return &v
}

func cloneSupplier(sp *entity.Supplier) *entity.Supplier {
	v := *sp
	return &v
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	v := *c
	return &v
}

func cloneMotorcycle(m *entity.Motorcycle) *entity.Motorcycle {
	v := *m
	return &v
}

func cloneUser(u *entity.User) *entity.User {
	v := *u
	return &v
}

func cloneRequisition(r *entity.PurchaseRequisition) *entity.PurchaseRequisition {
	v := *r
	v.Items = append([]entity.PurchaseRequisitionItem(nil), r.Items...)
	return &v
}

func clonePurchaseOrder(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	v := *po
	v.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return &v
}

func cloneGoodsReceipt(gr *entity.GoodsReceipt) *entity.GoodsReceipt {
	v := *gr
	v.Items = append([]entity.GoodsReceiptItem(nil), gr.Items...)
	return &v
}

func cloneJobOrder(j *entity.JobOrder) *entity.JobOrder {
	v := *j
	v.ServicesPerformed = append([]entity.JobOrderServiceItem(nil), j.ServicesPerformed...)
	v.PartsUsed = append([]entity.JobOrderPartItem(nil), j.PartsUsed...)
	v.PaymentHistory = append([]entity.Payment(nil), j.PaymentHistory...)
	return &v
}

func cloneSalesOrder(so *entity.SalesOrder) *entity.SalesOrder {
	v := *so
	v.Items = append([]entity.SalesOrderItem(nil), so.Items...)
	v.PaymentHistory = append([]entity.Payment(nil), so.PaymentHistory...)
	return &v
}

func clonePayment(p *entity.Payment) *entity.Payment {
	v := *p
	return &v
}
