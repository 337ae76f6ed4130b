package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// PartUseCase casos de uso CRUD para el catálogo de repuestos. El stock se
// muta solo vía el caso de uso de inventario; aquí solo el alta inicial.
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

// Create crea un repuesto con su stock inicial.
func (uc *PartUseCase) Create(in dto.CreatePartRequest) (*entity.Part, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	part := &entity.Part{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Cost:          in.Cost,
		StockQuantity: in.StockQuantity,
		MinStockLevel: in.MinStockLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	return part, nil
}

// GetByID obtiene un repuesto por ID.
func (uc *PartUseCase) GetByID(id string) (*entity.Part, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

// Update actualiza datos del catálogo. No permite modificar el stock.
func (uc *PartUseCase) Update(id string, in dto.UpdatePartRequest) (*entity.Part, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		part.Name = in.Name
	}
	part.Description = in.Description
	part.Price = in.Price
	part.Cost = in.Cost
	part.MinStockLevel = in.MinStockLevel
	if in.IsActive != nil {
		part.IsActive = *in.IsActive
	}
	part.UpdatedAt = time.Now()
	if err := uc.repo.Update(part); err != nil {
		return nil, err
	}
	return part, nil
}

// List lista repuestos paginados.
func (uc *PartUseCase) List(limit, offset int) ([]*entity.Part, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(limit, offset)
}

// Delete elimina un repuesto del catálogo.
func (uc *PartUseCase) Delete(id string) error {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
