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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación de SalesOrderRepository sobre PostgreSQL.
// Cabecera en sales_orders, líneas en sales_order_items.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const salesOrderColumns = `id, order_number, customer_id, customer_name, status, discount_amount, tax_amount, grand_total, amount_paid, payment_status, notes, created_by_user_id, created_at, updated_at`

// Create persiste la venta con sus líneas.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, order_number, customer_id, customer_name, status, discount_amount, tax_amount, grand_total, amount_paid, payment_status, notes, created_by_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerID, order.CustomerName, order.Status,
		order.DiscountAmount, order.TaxAmount, order.GrandTotal, order.AmountPaid,
		order.PaymentStatus, order.Notes, order.CreatedByUserID, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return r.insertItems(order.ID, order.Items)
}

func (r *SalesOrderRepo) insertItems(orderID string, items []entity.SalesOrderItem) error {
	for i, it := range items {
		id := it.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sales_order_items (id, sales_order_id, part_id, part_name, quantity, price_per_unit, total_price, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, orderID, it.PartID, it.PartName, it.Quantity, it.PricePerUnit, it.TotalPrice, i,
		)
		if err != nil {
			return fmt.Errorf("insert sales order item: %w", err)
		}
	}
	return nil
}

func (r *SalesOrderRepo) loadItems(orderID string) ([]entity.SalesOrderItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, part_id, part_name, quantity, price_per_unit, total_price
		FROM sales_order_items WHERE sales_order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load sales order items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.SalesOrderItem, 0)
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.PartID, &it.PartName, &it.Quantity, &it.PricePerUnit, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID obtiene la venta completa (cabecera + líneas).
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := r.q.QueryRow(context.Background(),
		`SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.Status,
		&o.DiscountAmount, &o.TaxAmount, &o.GrandTotal, &o.AmountPaid,
		&o.PaymentStatus, &o.Notes, &o.CreatedByUserID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	o.Items, err = r.loadItems(id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update actualiza cabecera y reescribe las líneas.
func (r *SalesOrderRepo) Update(order *entity.SalesOrder) error {
	query := `
		UPDATE sales_orders
		SET customer_name = $2, status = $3, discount_amount = $4, tax_amount = $5,
		    grand_total = $6, amount_paid = $7, payment_status = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerName, order.Status, order.DiscountAmount, order.TaxAmount,
		order.GrandTotal, order.AmountPaid, order.PaymentStatus, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM sales_order_items WHERE sales_order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete sales order items: %w", err)
	}
	return r.insertItems(order.ID, order.Items)
}

// List lista ventas con paginación.
func (r *SalesOrderRepo) List(limit, offset int) ([]*entity.SalesOrder, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+salesOrderColumns+` FROM sales_orders ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.Status,
			&o.DiscountAmount, &o.TaxAmount, &o.GrandTotal, &o.AmountPaid,
			&o.PaymentStatus, &o.Notes, &o.CreatedByUserID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items, err = r.loadItems(o.ID)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}
