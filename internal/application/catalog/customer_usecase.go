package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes y sus motocicletas.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	motoRepo repository.MotorcycleRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, motoRepo repository.MotorcycleRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, motoRepo: motoRepo}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(limit, offset)
}

// AddMotorcycle registra una motocicleta a nombre del cliente.
func (uc *CustomerUseCase) AddMotorcycle(customerID string, in dto.CreateMotorcycleRequest) (*entity.Motorcycle, error) {
	if in.PlateNumber == "" || in.Brand == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.GetByID(customerID); err != nil {
		return nil, err
	}
	now := time.Now()
	moto := &entity.Motorcycle{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		PlateNumber: in.PlateNumber,
		Brand:       in.Brand,
		Model:       in.Model,
		Year:        in.Year,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.motoRepo.Create(moto); err != nil {
		return nil, err
	}
	return moto, nil
}

// ListMotorcycles lista las motocicletas del cliente.
func (uc *CustomerUseCase) ListMotorcycles(customerID string) ([]*entity.Motorcycle, error) {
	if _, err := uc.GetByID(customerID); err != nil {
		return nil, err
	}
	return uc.motoRepo.ListByCustomer(customerID)
}
