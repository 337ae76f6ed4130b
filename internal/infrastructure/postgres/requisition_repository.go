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

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo implementación de RequisitionRepository sobre PostgreSQL.
// Cabecera en purchase_requisitions, líneas en purchase_requisition_items.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionColumns = `id, requested_by_user_id, department, status, total_estimated_value, notes, approved_by_user_id, approved_date, created_at, updated_at`

// Create persiste la requisición con sus líneas.
func (r *RequisitionRepo) Create(requisition *entity.PurchaseRequisition) error {
	query := `
		INSERT INTO purchase_requisitions (id, requested_by_user_id, department, status, total_estimated_value, notes, approved_by_user_id, approved_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		requisition.ID, requisition.RequestedByUserID, requisition.Department, requisition.Status,
		requisition.TotalEstimatedValue, requisition.Notes, requisition.ApprovedByUserID,
		requisition.ApprovedDate, requisition.CreatedAt, requisition.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert requisition: %w", err)
	}
	return r.insertItems(requisition.ID, requisition.Items)
}

func (r *RequisitionRepo) insertItems(requisitionID string, items []entity.PurchaseRequisitionItem) error {
	for i, item := range items {
		id := item.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_requisition_items (id, requisition_id, description, part_id, quantity, estimated_price_per_unit, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, requisitionID, item.Description, item.PartID, item.Quantity, item.EstimatedPricePerUnit, i,
		)
		if err != nil {
			return fmt.Errorf("insert requisition item: %w", err)
		}
	}
	return nil
}

func (r *RequisitionRepo) loadItems(requisitionID string) ([]entity.PurchaseRequisitionItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, description, part_id, quantity, estimated_price_per_unit
		FROM purchase_requisition_items WHERE requisition_id = $1 ORDER BY position`,
		requisitionID)
	if err != nil {
		return nil, fmt.Errorf("load requisition items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.PurchaseRequisitionItem, 0)
	for rows.Next() {
		var it entity.PurchaseRequisitionItem
		if err := rows.Scan(&it.ID, &it.Description, &it.PartID, &it.Quantity, &it.EstimatedPricePerUnit); err != nil {
			return nil, fmt.Errorf("scan requisition item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID obtiene la requisición completa (cabecera + líneas).
func (r *RequisitionRepo) GetByID(id string) (*entity.PurchaseRequisition, error) {
	var req entity.PurchaseRequisition
	err := r.q.QueryRow(context.Background(),
		`SELECT `+requisitionColumns+` FROM purchase_requisitions WHERE id = $1`, id).Scan(
		&req.ID, &req.RequestedByUserID, &req.Department, &req.Status, &req.TotalEstimatedValue,
		&req.Notes, &req.ApprovedByUserID, &req.ApprovedDate, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	req.Items, err = r.loadItems(id)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Update reescribe cabecera y líneas (delete + insert de ítems).
func (r *RequisitionRepo) Update(requisition *entity.PurchaseRequisition) error {
	query := `
		UPDATE purchase_requisitions
		SET requested_by_user_id = $2, department = $3, status = $4, total_estimated_value = $5,
		    notes = $6, approved_by_user_id = $7, approved_date = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		requisition.ID, requisition.RequestedByUserID, requisition.Department, requisition.Status,
		requisition.TotalEstimatedValue, requisition.Notes, requisition.ApprovedByUserID,
		requisition.ApprovedDate, requisition.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_requisition_items WHERE requisition_id = $1`, requisition.ID); err != nil {
		return fmt.Errorf("delete requisition items: %w", err)
	}
	return r.insertItems(requisition.ID, requisition.Items)
}

// List lista requisiciones con paginación, con sus líneas.
func (r *RequisitionRepo) List(limit, offset int) ([]*entity.PurchaseRequisition, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+requisitionColumns+` FROM purchase_requisitions ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseRequisition
	for rows.Next() {
		var req entity.PurchaseRequisition
		if err := rows.Scan(&req.ID, &req.RequestedByUserID, &req.Department, &req.Status,
			&req.TotalEstimatedValue, &req.Notes, &req.ApprovedByUserID, &req.ApprovedDate,
			&req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, req := range list {
		req.Items, err = r.loadItems(req.ID)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Delete elimina la requisición (las líneas caen en cascada).
func (r *RequisitionRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM purchase_requisitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete requisition: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
