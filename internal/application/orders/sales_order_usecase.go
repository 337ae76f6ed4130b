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

// SalesOrderUseCase maneja las ventas directas de mostrador: estructura
// análoga a la orden de trabajo pero sin líneas de servicio y con cliente
// opcional (venta a nombre del cliente de mostrador).
type SalesOrderUseCase struct {
	txRunner       TxRunner
	inventoryUC    InventoryUseCase
	salesRepo      repository.SalesOrderRepository
	paymentRepo    repository.PaymentRepository
	customerRepo   repository.CustomerRepository
	partRepo       repository.PartRepository
	defaultTaxRate decimal.Decimal
}

// NewSalesOrderUseCase construye el caso de uso.
func NewSalesOrderUseCase(
	txRunner TxRunner,
	inventoryUC InventoryUseCase,
	salesRepo repository.SalesOrderRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	partRepo repository.PartRepository,
	defaultTaxRate decimal.Decimal,
) *SalesOrderUseCase {
	return &SalesOrderUseCase{
		txRunner:       txRunner,
		inventoryUC:    inventoryUC,
		salesRepo:      salesRepo,
		paymentRepo:    paymentRepo,
		customerRepo:   customerRepo,
		partRepo:       partRepo,
		defaultTaxRate: defaultTaxRate,
	}
}

// Create crea la venta: resuelve el cliente (o mostrador), deriva totales,
// debita inventario por cada ítem y, si nace pagada, siembra el pago inicial.
func (uc *SalesOrderUseCase) Create(ctx context.Context, userID string, in dto.CreateSalesOrderRequest) (*entity.SalesOrder, error) {
	if in.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}
	customerName := entity.WalkInCustomerName
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
		customerName = customer.Name
	}
	items, err := uc.resolveSaleItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.SalesOrder{
		ID:              uuid.New().String(),
		OrderNumber:     fmt.Sprintf("SO-%d", now.Unix()),
		CustomerID:      in.CustomerID,
		CustomerName:    customerName,
		Status:          entity.SaleStatusCompleted,
		Items:           items,
		DiscountAmount:  in.DiscountAmount,
		Notes:           in.Notes,
		CreatedByUserID: userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.TaxAmount, order.GrandTotal = domainorders.GrandTotal(order.ItemsTotal(), in.DiscountAmount, in.TaxAmount, uc.defaultTaxRate)
	order.AmountPaid = decimal.Zero
	order.PaymentStatus = billing.DerivePaymentStatus(order.GrandTotal, order.AmountPaid)

	err = uc.txRunner.RunOrders(ctx, func(
		partRepo repository.PartRepository,
		_ repository.JobOrderRepository,
		salesRepo repository.SalesOrderRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		for _, item := range order.Items {
			if err := uc.inventoryUC.DebitInTx(partRepo, item.PartID, item.Quantity, now); err != nil {
				return err
			}
		}
		if in.MarkAsPaid && order.GrandTotal.GreaterThan(decimal.Zero) {
			payment := initialPayment(order.ID, entity.OrderTypeSalesOrder, order.GrandTotal, in.PaymentMethod, userID, now)
			if err := paymentRepo.Create(payment); err != nil {
				return err
			}
			order.PaymentHistory = append(order.PaymentHistory, *payment)
			order.AmountPaid = order.GrandTotal
			order.PaymentStatus = billing.DerivePaymentStatus(order.GrandTotal, order.AmountPaid)
		}
		return salesRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID devuelve la venta con AmountPaid y PaymentStatus recalculados desde
// el historial: el valor persistido es caché, no autoridad.
func (uc *SalesOrderUseCase) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	order, err := uc.salesRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	history, err := uc.paymentRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	order.PaymentHistory = payments(history)
	order.AmountPaid = billing.SumPayments(order.PaymentHistory)
	order.PaymentStatus = billing.DerivePaymentStatus(order.GrandTotal, order.AmountPaid)
	return order, nil
}

// AddPayment anexa un pago si no existe ya uno con el mismo id (idempotente),
// recalcula AmountPaid y rederiva PaymentStatus.
func (uc *SalesOrderUseCase) AddPayment(ctx context.Context, orderID string, payment *entity.Payment) (*entity.SalesOrder, error) {
	var order *entity.SalesOrder
	err := uc.txRunner.RunOrders(ctx, func(
		_ repository.PartRepository,
		_ repository.JobOrderRepository,
		salesRepo repository.SalesOrderRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		var err error
		order, err = salesRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, orderID)
		}
		existing, err := paymentRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}
		for _, p := range existing {
			if p.ID == payment.ID {
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
		return salesRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List devuelve una página de ventas.
func (uc *SalesOrderUseCase) List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error) {
	return uc.salesRepo.List(limit, offset)
}

// resolveSaleItems valida las líneas y completa nombre y precio de venta
// vigente cuando el caller no envía precio.
func (uc *SalesOrderUseCase) resolveSaleItems(in []dto.PartItemRequest) ([]entity.SalesOrderItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: la venta requiere al menos un ítem", domain.ErrInvalidInput)
	}
	items := make([]entity.SalesOrderItem, 0, len(in))
	for i, item := range in {
		if item.PartID == "" {
			return nil, fmt.Errorf("%w: ítem %d sin repuesto", domain.ErrInvalidInput, i)
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
		items = append(items, entity.SalesOrderItem{
			ID:           uuid.New().String(),
			PartID:       part.ID,
			PartName:     part.Name,
			Quantity:     item.Quantity,
			PricePerUnit: price,
			TotalPrice:   price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	if err := domainorders.ValidateSaleItems(items); err != nil {
		return nil, err
	}
	return items, nil
}
