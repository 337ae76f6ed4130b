package repository

import "github.com/jhoicas/TallerMotos-api/internal/domain/entity"

// PartRepository define el puerto de persistencia para Part (DIP).
// GetForUpdate bloquea la fila del repuesto dentro de la transacción en curso
// (SELECT FOR UPDATE); es la barrera de escritor único por repuesto.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetBySKU(sku string) (*entity.Part, error)
	GetForUpdate(id string) (*entity.Part, error)
	Update(part *entity.Part) error
	UpdateStock(partID string, stockQuantity int) error
	List(limit, offset int) ([]*entity.Part, error)
	Delete(id string) error
}
