package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

var _ repository.JobOrderRepository = (*JobOrderRepo)(nil)

// JobOrderRepo implementación de JobOrderRepository sobre PostgreSQL.
// Cabecera en job_orders, líneas en job_order_services y job_order_parts.
// El historial de pagos vive en payments y no se carga aquí.
type JobOrderRepo struct {
	q Querier
}

// NewJobOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobOrderRepository(q Querier) *JobOrderRepo {
	return &JobOrderRepo{q: q}
}

const jobOrderColumns = `id, order_number, customer_id, customer_name, motorcycle_id, assigned_mechanic_id, status, discount_amount, tax_amount, grand_total, amount_paid, payment_status, notes, created_by_user_id, created_at, updated_at`

// Create persiste la orden de trabajo con sus líneas.
func (r *JobOrderRepo) Create(order *entity.JobOrder) error {
	query := `
		INSERT INTO job_orders (id, order_number, customer_id, customer_name, motorcycle_id, assigned_mechanic_id, status, discount_amount, tax_amount, grand_total, amount_paid, payment_status, notes, created_by_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerID, order.CustomerName, order.MotorcycleID,
		order.AssignedMechanicID, order.Status, order.DiscountAmount, order.TaxAmount,
		order.GrandTotal, order.AmountPaid, order.PaymentStatus, order.Notes,
		order.CreatedByUserID, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert job order: %w", err)
	}
	return r.insertItems(order)
}

func (r *JobOrderRepo) insertItems(order *entity.JobOrder) error {
	for i, s := range order.ServicesPerformed {
		id := s.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO job_order_services (id, job_order_id, service_id, description, labor_cost, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, order.ID, s.ServiceID, s.Description, s.LaborCost, i,
		)
		if err != nil {
			return fmt.Errorf("insert job order service: %w", err)
		}
	}
	for i, p := range order.PartsUsed {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO job_order_parts (id, job_order_id, part_id, part_name, quantity, price_per_unit, total_price, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, order.ID, p.PartID, p.PartName, p.Quantity, p.PricePerUnit, p.TotalPrice, i,
		)
		if err != nil {
			return fmt.Errorf("insert job order part: %w", err)
		}
	}
	return nil
}

func (r *JobOrderRepo) loadItems(order *entity.JobOrder) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, service_id, description, labor_cost
		FROM job_order_services WHERE job_order_id = $1 ORDER BY position`, order.ID)
	if err != nil {
		return fmt.Errorf("load job order services: %w", err)
	}
	defer rows.Close()
	order.ServicesPerformed = make([]entity.JobOrderServiceItem, 0)
	for rows.Next() {
		var s entity.JobOrderServiceItem
		if err := rows.Scan(&s.ID, &s.ServiceID, &s.Description, &s.LaborCost); err != nil {
			return fmt.Errorf("scan job order service: %w", err)
		}
		order.ServicesPerformed = append(order.ServicesPerformed, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	partRows, err := r.q.Query(context.Background(), `
		SELECT id, part_id, part_name, quantity, price_per_unit, total_price
		FROM job_order_parts WHERE job_order_id = $1 ORDER BY position`, order.ID)
	if err != nil {
		return fmt.Errorf("load job order parts: %w", err)
	}
	defer partRows.Close()
	order.PartsUsed = make([]entity.JobOrderPartItem, 0)
	for partRows.Next() {
		var p entity.JobOrderPartItem
		if err := partRows.Scan(&p.ID, &p.PartID, &p.PartName, &p.Quantity, &p.PricePerUnit, &p.TotalPrice); err != nil {
			return fmt.Errorf("scan job order part: %w", err)
		}
		order.PartsUsed = append(order.PartsUsed, p)
	}
	return partRows.Err()
}

// GetByID obtiene la orden de trabajo completa (cabecera + líneas).
func (r *JobOrderRepo) GetByID(id string) (*entity.JobOrder, error) {
	var o entity.JobOrder
	err := r.q.QueryRow(context.Background(),
		`SELECT `+jobOrderColumns+` FROM job_orders WHERE id = $1`, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.MotorcycleID,
		&o.AssignedMechanicID, &o.Status, &o.DiscountAmount, &o.TaxAmount, &o.GrandTotal,
		&o.AmountPaid, &o.PaymentStatus, &o.Notes, &o.CreatedByUserID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job order: %w", err)
	}
	if err := r.loadItems(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update actualiza cabecera y reescribe las líneas.
func (r *JobOrderRepo) Update(order *entity.JobOrder) error {
	query := `
		UPDATE job_orders
		SET customer_name = $2, motorcycle_id = $3, assigned_mechanic_id = $4, status = $5,
		    discount_amount = $6, tax_amount = $7, grand_total = $8, amount_paid = $9,
		    payment_status = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerName, order.MotorcycleID, order.AssignedMechanicID, order.Status,
		order.DiscountAmount, order.TaxAmount, order.GrandTotal, order.AmountPaid,
		order.PaymentStatus, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM job_order_services WHERE job_order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete job order services: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM job_order_parts WHERE job_order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete job order parts: %w", err)
	}
	return r.insertItems(order)
}

func (r *JobOrderRepo) list(query string, args ...any) ([]*entity.JobOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list job orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobOrder
	for rows.Next() {
		var o entity.JobOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.MotorcycleID,
			&o.AssignedMechanicID, &o.Status, &o.DiscountAmount, &o.TaxAmount, &o.GrandTotal,
			&o.AmountPaid, &o.PaymentStatus, &o.Notes, &o.CreatedByUserID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// List lista órdenes de trabajo con paginación.
func (r *JobOrderRepo) List(limit, offset int) ([]*entity.JobOrder, error) {
	return r.list(`SELECT `+jobOrderColumns+` FROM job_orders ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByCustomer lista las órdenes de trabajo de un cliente.
func (r *JobOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.JobOrder, error) {
	return r.list(`SELECT `+jobOrderColumns+` FROM job_orders WHERE customer_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
}
