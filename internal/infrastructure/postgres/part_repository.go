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

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de persistencia para repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `id, sku, name, description, price, cost, stock_quantity, min_stock_level, is_active, created_at, updated_at`

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Cost,
		&p.StockQuantity, &p.MinStockLevel, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo repuesto.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (id, sku, name, description, price, cost, stock_quantity, min_stock_level, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.SKU, part.Name, part.Description, part.Price, part.Cost,
		part.StockQuantity, part.MinStockLevel, part.IsActive, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(context.Background(),
		`SELECT `+partColumns+` FROM parts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un repuesto por SKU.
func (r *PartRepo) GetBySKU(sku string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(context.Background(),
		`SELECT `+partColumns+` FROM parts WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part by sku: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el repuesto y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *PartRepo) GetForUpdate(id string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(context.Background(),
		`SELECT `+partColumns+` FROM parts WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part for update: %w", err)
	}
	return p, nil
}

// Update actualiza datos de catálogo del repuesto. El stock se maneja vía UpdateStock.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts
		SET sku = $2, name = $3, description = $4, price = $5, cost = $6,
		    min_stock_level = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		part.ID, part.SKU, part.Name, part.Description, part.Price, part.Cost,
		part.MinStockLevel, part.IsActive, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija la cantidad en stock (usado por el motor de inventario,
// siempre dentro de una transacción que bloqueó la fila con GetForUpdate).
func (r *PartRepo) UpdateStock(partID string, stockQuantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE parts SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		partID, stockQuantity,
	)
	if err != nil {
		return fmt.Errorf("update part stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista repuestos con paginación.
func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+partColumns+` FROM parts ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Cost,
			&p.StockQuantity, &p.MinStockLevel, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un repuesto por ID.
func (r *PartRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
