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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
// Cabecera en purchase_orders, líneas en purchase_order_items.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, order_number, supplier_id, purchase_requisition_id, status, sub_total, tax_amount, shipping_cost, grand_total, expected_delivery_date, notes, created_by_user_id, created_at, updated_at`

// Create persiste la orden de compra con sus líneas.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, order_number, supplier_id, purchase_requisition_id, status, sub_total, tax_amount, shipping_cost, grand_total, expected_delivery_date, notes, created_by_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.OrderNumber, po.SupplierID, po.PurchaseRequisitionID, po.Status,
		po.SubTotal, po.TaxAmount, po.ShippingCost, po.GrandTotal,
		po.ExpectedDeliveryDate, po.Notes, po.CreatedByUserID, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return r.insertItems(po.ID, po.Items)
}

func (r *PurchaseOrderRepo) insertItems(poID string, items []entity.PurchaseOrderItem) error {
	for i, item := range items {
		id := item.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_order_items (id, purchase_order_id, description, part_id, quantity, unit_price, total_price, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, poID, item.Description, item.PartID, item.Quantity, item.UnitPrice, item.TotalPrice, i,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(poID string) ([]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, description, part_id, quantity, unit_price, total_price
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY position`,
		poID)
	if err != nil {
		return nil, fmt.Errorf("load purchase order items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.PurchaseOrderItem, 0)
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.Description, &it.PartID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.OrderNumber, &po.SupplierID, &po.PurchaseRequisitionID,
		&po.Status, &po.SubTotal, &po.TaxAmount, &po.ShippingCost, &po.GrandTotal,
		&po.ExpectedDeliveryDate, &po.Notes, &po.CreatedByUserID, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// GetByID obtiene la orden completa (cabecera + líneas).
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(context.Background(),
		`SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.Items, err = r.loadItems(id)
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Update reescribe cabecera y líneas (delete + insert de ítems).
func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET supplier_id = $2, purchase_requisition_id = $3, status = $4, sub_total = $5,
		    tax_amount = $6, shipping_cost = $7, grand_total = $8, expected_delivery_date = $9,
		    notes = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		po.ID, po.SupplierID, po.PurchaseRequisitionID, po.Status, po.SubTotal,
		po.TaxAmount, po.ShippingCost, po.GrandTotal, po.ExpectedDeliveryDate,
		po.Notes, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, po.ID); err != nil {
		return fmt.Errorf("delete purchase order items: %w", err)
	}
	return r.insertItems(po.ID, po.Items)
}

func (r *PurchaseOrderRepo) list(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.OrderNumber, &po.SupplierID, &po.PurchaseRequisitionID,
			&po.Status, &po.SubTotal, &po.TaxAmount, &po.ShippingCost, &po.GrandTotal,
			&po.ExpectedDeliveryDate, &po.Notes, &po.CreatedByUserID, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range list {
		po.Items, err = r.loadItems(po.ID)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// List lista órdenes de compra con paginación.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(`SELECT `+poColumns+` FROM purchase_orders ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListBySupplier lista órdenes de compra de un proveedor.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(`SELECT `+poColumns+` FROM purchase_orders WHERE supplier_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		supplierID, limit, offset)
}

// Delete elimina la orden (las líneas caen en cascada).
func (r *PurchaseOrderRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
