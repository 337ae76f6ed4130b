package memory

import (
	"sort"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// SupplierRepo implementa repository.SupplierRepository.
type SupplierRepo struct {
	s *Store
}

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository {
	return &SupplierRepo{s: s}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.suppliers[supplier.ID] = cloneSupplier(supplier)
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return cloneSupplier(sp), nil
}

func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.suppliers[supplier.ID] = cloneSupplier(supplier)
	return nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		out = append(out, cloneSupplier(sp))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

func (r *SupplierRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.suppliers, id)
	return nil
}

// CustomerRepo implementa repository.CustomerRepository.
type CustomerRepo struct {
	s *Store
}

// Customers devuelve el repositorio de clientes.
func (s *Store) Customers() repository.CustomerRepository {
	return &CustomerRepo{s: s}
}

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[customer.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

func (r *CustomerRepo) Update(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, cloneCustomer(c))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

func (r *CustomerRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

// MotorcycleRepo implementa repository.MotorcycleRepository.
type MotorcycleRepo struct {
	s *Store
}

// Motorcycles devuelve el repositorio de motocicletas.
func (s *Store) Motorcycles() repository.MotorcycleRepository {
	return &MotorcycleRepo{s: s}
}

func (r *MotorcycleRepo) Create(motorcycle *entity.Motorcycle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.motorcycles[motorcycle.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.motorcycles[motorcycle.ID] = cloneMotorcycle(motorcycle)
	return nil
}

func (r *MotorcycleRepo) GetByID(id string) (*entity.Motorcycle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.motorcycles[id]
	if !ok {
		return nil, nil
	}
	return cloneMotorcycle(m), nil
}

func (r *MotorcycleRepo) ListByCustomer(customerID string) ([]*entity.Motorcycle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Motorcycle, 0)
	for _, m := range r.s.motorcycles {
		if m.CustomerID == customerID {
			out = append(out, cloneMotorcycle(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return out, nil
}

func (r *MotorcycleRepo) Update(motorcycle *entity.Motorcycle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.motorcycles[motorcycle.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.motorcycles[motorcycle.ID] = cloneMotorcycle(motorcycle)
	return nil
}

func (r *MotorcycleRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.motorcycles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.motorcycles, id)
	return nil
}

// UserRepo implementa repository.UserRepository.
type UserRepo struct {
	s *Store
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}
