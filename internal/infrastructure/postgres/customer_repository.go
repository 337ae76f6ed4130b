package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Phone, customer.Email, customer.Address,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, phone, email, address, created_at, updated_at FROM customers WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos del cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, email = $4, address = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Phone, customer.Email, customer.Address, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista clientes con paginación.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, phone, email, address, created_at, updated_at FROM customers ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un cliente por ID (borra en cascada sus motocicletas).
func (r *CustomerRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.MotorcycleRepository = (*MotorcycleRepo)(nil)

// MotorcycleRepo implementación de MotorcycleRepository sobre PostgreSQL.
type MotorcycleRepo struct {
	q Querier
}

// NewMotorcycleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMotorcycleRepository(q Querier) *MotorcycleRepo {
	return &MotorcycleRepo{q: q}
}

const motorcycleColumns = `id, customer_id, plate_number, brand, model, year, created_at, updated_at`

// Create persiste una motocicleta.
func (r *MotorcycleRepo) Create(motorcycle *entity.Motorcycle) error {
	query := `
		INSERT INTO motorcycles (id, customer_id, plate_number, brand, model, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		motorcycle.ID, motorcycle.CustomerID, motorcycle.PlateNumber, motorcycle.Brand,
		motorcycle.Model, motorcycle.Year, motorcycle.CreatedAt, motorcycle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert motorcycle: %w", err)
	}
	return nil
}

// GetByID obtiene una motocicleta por ID.
func (r *MotorcycleRepo) GetByID(id string) (*entity.Motorcycle, error) {
	var m entity.Motorcycle
	err := r.q.QueryRow(context.Background(),
		`SELECT `+motorcycleColumns+` FROM motorcycles WHERE id = $1`, id).Scan(
		&m.ID, &m.CustomerID, &m.PlateNumber, &m.Brand, &m.Model, &m.Year, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get motorcycle: %w", err)
	}
	return &m, nil
}

// ListByCustomer lista las motocicletas de un cliente.
func (r *MotorcycleRepo) ListByCustomer(customerID string) ([]*entity.Motorcycle, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+motorcycleColumns+` FROM motorcycles WHERE customer_id = $1 ORDER BY created_at, id`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("list motorcycles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Motorcycle
	for rows.Next() {
		var m entity.Motorcycle
		if err := rows.Scan(&m.ID, &m.CustomerID, &m.PlateNumber, &m.Brand, &m.Model,
			&m.Year, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan motorcycle: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza los datos de la motocicleta.
func (r *MotorcycleRepo) Update(motorcycle *entity.Motorcycle) error {
	query := `
		UPDATE motorcycles SET plate_number = $2, brand = $3, model = $4, year = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		motorcycle.ID, motorcycle.PlateNumber, motorcycle.Brand, motorcycle.Model,
		motorcycle.Year, motorcycle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update motorcycle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una motocicleta por ID.
func (r *MotorcycleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM motorcycles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete motorcycle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
