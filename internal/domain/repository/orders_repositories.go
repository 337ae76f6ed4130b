package repository

import "github.com/jhoicas/TallerMotos-api/internal/domain/entity"

// JobOrderRepository define el puerto de persistencia para JobOrder con sus
// líneas embebidas. El historial de pagos vive en PaymentRepository.
type JobOrderRepository interface {
	Create(order *entity.JobOrder) error
	GetByID(id string) (*entity.JobOrder, error)
	Update(order *entity.JobOrder) error
	List(limit, offset int) ([]*entity.JobOrder, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.JobOrder, error)
}

// SalesOrderRepository define el puerto de persistencia para SalesOrder.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	GetByID(id string) (*entity.SalesOrder, error)
	Update(order *entity.SalesOrder) error
	List(limit, offset int) ([]*entity.SalesOrder, error)
}

// PaymentRepository define el puerto de persistencia para Payment.
// Los pagos son inmutables: no hay Update ni Delete.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByOrder(orderID string) ([]*entity.Payment, error)
}
