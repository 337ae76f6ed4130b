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

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación de GoodsReceiptRepository sobre PostgreSQL.
// Cabecera en goods_receipts, líneas en goods_receipt_items.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

const receiptColumns = `id, receipt_number, purchase_order_id, supplier_id, status, received_date, received_by_user_id, notes, stock_credited, created_at, updated_at`

// Create persiste la recepción con sus líneas.
func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (id, receipt_number, purchase_order_id, supplier_id, status, received_date, received_by_user_id, notes, stock_credited, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.ReceiptNumber, receipt.PurchaseOrderID, receipt.SupplierID,
		receipt.Status, receipt.ReceivedDate, receipt.ReceivedByUserID, receipt.Notes,
		receipt.StockCredited, receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	return r.insertItems(receipt.ID, receipt.Items)
}

func (r *GoodsReceiptRepo) insertItems(receiptID string, items []entity.GoodsReceiptItem) error {
	for i, item := range items {
		id := item.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO goods_receipt_items (id, goods_receipt_id, purchase_order_item_id, part_id, quantity_ordered, quantity_received, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, receiptID, item.PurchaseOrderItemID, item.PartID, item.QuantityOrdered, item.QuantityReceived, i,
		)
		if err != nil {
			return fmt.Errorf("insert goods receipt item: %w", err)
		}
	}
	return nil
}

func (r *GoodsReceiptRepo) loadItems(receiptID string) ([]entity.GoodsReceiptItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, purchase_order_item_id, part_id, quantity_ordered, quantity_received
		FROM goods_receipt_items WHERE goods_receipt_id = $1 ORDER BY position`,
		receiptID)
	if err != nil {
		return nil, fmt.Errorf("load goods receipt items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.GoodsReceiptItem, 0)
	for rows.Next() {
		var it entity.GoodsReceiptItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderItemID, &it.PartID, &it.QuantityOrdered, &it.QuantityReceived); err != nil {
			return nil, fmt.Errorf("scan goods receipt item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID obtiene la recepción completa (cabecera + líneas).
func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	var gr entity.GoodsReceipt
	err := r.q.QueryRow(context.Background(),
		`SELECT `+receiptColumns+` FROM goods_receipts WHERE id = $1`, id).Scan(
		&gr.ID, &gr.ReceiptNumber, &gr.PurchaseOrderID, &gr.SupplierID, &gr.Status,
		&gr.ReceivedDate, &gr.ReceivedByUserID, &gr.Notes, &gr.StockCredited,
		&gr.CreatedAt, &gr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}
	gr.Items, err = r.loadItems(id)
	if err != nil {
		return nil, err
	}
	return &gr, nil
}

// Update reescribe cabecera y líneas (delete + insert de ítems).
func (r *GoodsReceiptRepo) Update(receipt *entity.GoodsReceipt) error {
	query := `
		UPDATE goods_receipts
		SET status = $2, received_date = $3, received_by_user_id = $4, notes = $5,
		    stock_credited = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Status, receipt.ReceivedDate, receipt.ReceivedByUserID,
		receipt.Notes, receipt.StockCredited, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update goods receipt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM goods_receipt_items WHERE goods_receipt_id = $1`, receipt.ID); err != nil {
		return fmt.Errorf("delete goods receipt items: %w", err)
	}
	return r.insertItems(receipt.ID, receipt.Items)
}

func (r *GoodsReceiptRepo) list(query string, args ...any) ([]*entity.GoodsReceipt, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.GoodsReceipt
	for rows.Next() {
		var gr entity.GoodsReceipt
		if err := rows.Scan(&gr.ID, &gr.ReceiptNumber, &gr.PurchaseOrderID, &gr.SupplierID,
			&gr.Status, &gr.ReceivedDate, &gr.ReceivedByUserID, &gr.Notes, &gr.StockCredited,
			&gr.CreatedAt, &gr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		list = append(list, &gr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, gr := range list {
		gr.Items, err = r.loadItems(gr.ID)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// List lista recepciones con paginación.
func (r *GoodsReceiptRepo) List(limit, offset int) ([]*entity.GoodsReceipt, error) {
	return r.list(`SELECT `+receiptColumns+` FROM goods_receipts ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByPurchaseOrder lista todas las recepciones de una orden de compra.
func (r *GoodsReceiptRepo) ListByPurchaseOrder(purchaseOrderID string) ([]*entity.GoodsReceipt, error) {
	return r.list(`SELECT `+receiptColumns+` FROM goods_receipts WHERE purchase_order_id = $1 ORDER BY created_at, id`,
		purchaseOrderID)
}
