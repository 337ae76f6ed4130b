package repository

import "github.com/jhoicas/TallerMotos-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(limit, offset int) ([]*entity.Supplier, error)
	Delete(id string) error
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
}

// MotorcycleRepository define el puerto de persistencia para Motorcycle.
type MotorcycleRepository interface {
	Create(motorcycle *entity.Motorcycle) error
	GetByID(id string) (*entity.Motorcycle, error)
	ListByCustomer(customerID string) ([]*entity.Motorcycle, error)
	Update(motorcycle *entity.Motorcycle) error
	Delete(id string) error
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
}
