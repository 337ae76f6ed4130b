package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/billing"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	domainorders "github.com/jhoicas/TallerMotos-api/internal/domain/orders"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// JobOrderUseCase maneja las órdenes de trabajo del taller: crea el documento
// con sus totales derivados, debita del inventario los repuestos consumidos en
// la misma transacción y mantiene el estado de pago derivado del historial.
type JobOrderUseCase struct {
	txRunner       TxRunner
	inventoryUC    InventoryUseCase
	jobRepo        repository.JobOrderRepository
	paymentRepo    repository.PaymentRepository
	customerRepo   repository.CustomerRepository
	partRepo       repository.PartRepository
	defaultTaxRate decimal.Decimal // porcentaje del taller (p. ej. 12 = 12%)
}

// NewJobOrderUseCase construye el caso de uso.
func NewJobOrderUseCase(
	txRunner TxRunner,
	inventoryUC InventoryUseCase,
	jobRepo repository.JobOrderRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	partRepo repository.PartRepository,
	defaultTaxRate decimal.Decimal,
) *JobOrderUseCase {
	return &JobOrderUseCase{
		txRunner:       txRunner,
		inventoryUC:    inventoryUC,
		jobRepo:        jobRepo,
		paymentRepo:    paymentRepo,
		customerRepo:   customerRepo,
		partRepo:       partRepo,
		defaultTaxRate: defaultTaxRate,
	}
}

// Create crea la orden de trabajo: resuelve el cliente, deriva totales,
// debita del inventario cada línea de repuesto (sin stock suficiente hace
// rollback completo) y, si nace pagada, siembra el pago inicial.
func (uc *JobOrderUseCase) Create(ctx context.Context, userID string, in dto.CreateJobOrderRequest) (*entity.JobOrder, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: la orden de trabajo requiere cliente", domain.ErrInvalidInput)
	}
	if len(in.Services) == 0 && len(in.Parts) == 0 {
		return nil, fmt.Errorf("%w: la orden requiere al menos una línea de servicio o repuesto", domain.ErrInvalidInput)
	}
	if in.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	services := make([]entity.JobOrderServiceItem, 0, len(in.Services))
	for i, s := range in.Services {
		if s.LaborCost.IsNegative() {
			return nil, fmt.Errorf("%w: servicio %d con costo negativo", domain.ErrInvalidInput, i)
		}
		services = append(services, entity.JobOrderServiceItem{
			ID:          uuid.New().String(),
			ServiceID:   s.ServiceID,
			Description: s.Description,
			LaborCost:   s.LaborCost,
		})
	}
	parts, err := uc.resolvePartItems(in.Parts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.JobOrder{
		ID:                 uuid.New().String(),
		OrderNumber:        fmt.Sprintf("JO-%d", now.Unix()),
		CustomerID:         customer.ID,
		CustomerName:       customer.Name,
		MotorcycleID:       in.MotorcycleID,
		AssignedMechanicID: in.AssignedMechanicID,
		Status:             entity.JobStatusPending,
		ServicesPerformed:  services,
		PartsUsed:          parts,
		DiscountAmount:     in.DiscountAmount,
		Notes:              in.Notes,
		CreatedByUserID:    userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	subtotal := order.LaborTotal().Add(order.PartsTotal())
	order.TaxAmount, order.GrandTotal = domainorders.GrandTotal(subtotal, in.DiscountAmount, in.TaxAmount, uc.defaultTaxRate)
	order.AmountPaid = decimal.Zero
	order.PaymentStatus = billing.DerivePaymentStatus(order.GrandTotal, order.AmountPaid)

	err = uc.txRunner.RunOrders(ctx, func(
		partRepo repository.PartRepository,
		jobRepo repository.JobOrderRepository,
		_ repository.SalesOrderRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		// Débito de inventario por cada línea de repuesto; rollback completo
		// si algún repuesto no tiene stock.
		for _, item := range order.PartsUsed {
			if err := uc.inventoryUC.DebitInTx(partRepo, item.PartID, item.Quantity, now); err != nil {
				return err
			}
		}
		// Una orden de valor cero ya nace saldada; no se siembra pago.
		if in.MarkAsPaid && order.GrandTotal.GreaterThan(decimal.Zero) {
			payment := initialPayment(order.ID, entity.OrderTypeJobOrder, order.GrandTotal, in.PaymentMethod, userID, now)
			if err := paymentRepo.Create(payment); err != nil {
				return err
			}
			order.PaymentHistory = append(order.PaymentHistory, *payment)
			order.AmountPaid = order.GrandTotal
			order.PaymentStatus = billing.DerivePaymentStatus(order.GrandTotal, order.AmountPaid)
		}
		return jobRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID devuelve la orden con AmountPaid recalculado desde el historial
// completo de pagos y PaymentStatus rederivado: el valor persistido es caché,
// no autoridad.
func (uc *JobOrderUseCase) GetByID(ctx context.Context, id string) (*entity.JobOrder, error) {
	order, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de trabajo %s", domain.ErrNotFound, id)
	}
	if err := uc.refreshPayments(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddPayment anexa un pago al historial si no existe ya uno con el mismo id
// (idempotente por id de pago), recalcula AmountPaid y rederiva PaymentStatus.
func (uc *JobOrderUseCase) AddPayment(ctx context.Context, orderID string, payment *entity.Payment) (*entity.JobOrder, error) {
	var order *entity.JobOrder
	err := uc.txRunner.RunOrders(ctx, func(
		_ repository.PartRepository,
		jobRepo repository.JobOrderRepository,
		_ repository.SalesOrderRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		var err error
		order, err = jobRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden de trabajo %s", domain.ErrNotFound, orderID)
		}
		existing, err := paymentRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}
		for _, p := range existing {
			if p.ID == payment.ID {
				// Mismo pago reenviado: no se duplica el abono.
				order.PaymentHistory = payments(existing)
				order.AmountPaid = billing.SumPayments(order.PaymentHistory)
				order.PaymentStatus = billing.DerivePaymentStatus(order.GrandTotal, order.AmountPaid)
				return nil
			}
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		order.PaymentHistory = append(payments(existing), *payment)
		order.AmountPaid = billing.SumPayments(order.PaymentHistory)
		order.PaymentStatus = billing.DerivePaymentStatus(order.GrandTotal, order.AmountPaid)
		order.UpdatedAt = time.Now()
		return jobRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus mueve la orden de trabajo entre estados de avance del taller.
func (uc *JobOrderUseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*entity.JobOrder, error) {
	switch newStatus {
	case entity.JobStatusPending, entity.JobStatusInProgress, entity.JobStatusWaitingForParts,
		entity.JobStatusCompleted, entity.JobStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: estado de orden %q desconocido", domain.ErrInvalidInput, newStatus)
	}
	order, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de trabajo %s", domain.ErrNotFound, id)
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now()
	if err := uc.jobRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// List devuelve una página de órdenes, opcionalmente filtrada por cliente.
func (uc *JobOrderUseCase) List(ctx context.Context, customerID string, limit, offset int) ([]*entity.JobOrder, error) {
	if customerID != "" {
		return uc.jobRepo.ListByCustomer(customerID, limit, offset)
	}
	return uc.jobRepo.List(limit, offset)
}

// refreshPayments recalcula los campos derivados de pago desde el ledger.
func (uc *JobOrderUseCase) refreshPayments(order *entity.JobOrder) error {
	history, err := uc.paymentRepo.ListByOrder(order.ID)
	if err != nil {
		return err
	}
	order.PaymentHistory = payments(history)
	order.AmountPaid = billing.SumPayments(order.PaymentHistory)
	order.PaymentStatus = billing.DerivePaymentStatus(order.GrandTotal, order.AmountPaid)
	return nil
}

// resolvePartItems valida las líneas de repuesto y completa nombre y precio
// de venta vigente cuando el caller no envía precio.
func (uc *JobOrderUseCase) resolvePartItems(in []dto.PartItemRequest) ([]entity.JobOrderPartItem, error) {
	items := make([]entity.JobOrderPartItem, 0, len(in))
	for i, item := range in {
		if item.PartID == "" {
			return nil, fmt.Errorf("%w: línea de repuesto %d sin repuesto", domain.ErrInvalidInput, i)
		}
		part, err := uc.partRepo.GetByID(item.PartID)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, item.PartID)
		}
		price := part.Price
		if item.PricePerUnit != nil {
			price = *item.PricePerUnit
		}
		line := entity.JobOrderPartItem{
			ID:           uuid.New().String(),
			PartID:       part.ID,
			PartName:     part.Name,
			Quantity:     item.Quantity,
			PricePerUnit: price,
			TotalPrice:   price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		items = append(items, line)
	}
	if err := domainorders.ValidatePartItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

// initialPayment arma el pago sintético de una orden creada ya pagada.
func initialPayment(orderID, orderType string, amount decimal.Decimal, method, userID string, now time.Time) *entity.Payment {
	if method == "" {
		method = entity.PaymentMethodCash
	}
	return &entity.Payment{
		ID:                uuid.New().String(),
		OrderID:           orderID,
		OrderType:         orderType,
		Amount:            amount,
		PaymentDate:       now,
		Method:            method,
		Notes:             "Pago inicial registrado con la creación de la orden",
		ProcessedByUserID: userID,
		CreatedAt:         now,
	}
}

// payments convierte un slice de punteros del repo al historial embebido.
func payments(in []*entity.Payment) []entity.Payment {
	out := make([]entity.Payment, 0, len(in))
	for _, p := range in {
		out = append(out, *p)
	}
	return out
}
