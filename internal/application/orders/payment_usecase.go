package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
)

// PaymentUseCase es el ledger de pagos: valida y crea pagos inmutables y
// delega la actualización de saldo/estado al store dueño del documento.
// No existe anulación, edición ni reembolso de pagos.
type PaymentUseCase struct {
	jobUC   *JobOrderUseCase
	salesUC *SalesOrderUseCase
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(jobUC *JobOrderUseCase, salesUC *SalesOrderUseCase) *PaymentUseCase {
	return &PaymentUseCase{jobUC: jobUC, salesUC: salesUC}
}

// RecordResult resultado de registrar un pago: el pago y el saldo derivado
// del documento dueño.
type RecordResult struct {
	Payment       *entity.Payment
	GrandTotal    decimal.Decimal
	AmountPaid    decimal.Decimal
	BalanceDue    decimal.Decimal
	PaymentStatus string
}

// Record valida amount > 0, arma el pago inmutable y lo aplica al documento
// dueño (orden de trabajo o venta), que recalcula saldo y estado.
func (uc *PaymentUseCase) Record(ctx context.Context, userID string, in dto.RecordPaymentRequest) (*RecordResult, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto del pago debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.OrderID == "" {
		return nil, fmt.Errorf("%w: el pago requiere documento", domain.ErrInvalidInput)
	}
	method := in.Method
	if method == "" {
		method = entity.PaymentMethodCash
	}
	now := time.Now()
	date := now
	if in.PaymentDate != nil {
		date = *in.PaymentDate
	}
	id := in.PaymentID
	if id == "" {
		id = uuid.New().String()
	}
	payment := &entity.Payment{
		ID:                id,
		OrderID:           in.OrderID,
		OrderType:         in.OrderType,
		Amount:            in.Amount,
		PaymentDate:       date,
		Method:            method,
		Notes:             in.Notes,
		ProcessedByUserID: userID,
		CreatedAt:         now,
	}

	switch in.OrderType {
	case entity.OrderTypeJobOrder:
		order, err := uc.jobUC.AddPayment(ctx, in.OrderID, payment)
		if err != nil {
			return nil, err
		}
		return &RecordResult{
			Payment:       payment,
			GrandTotal:    order.GrandTotal,
			AmountPaid:    order.AmountPaid,
			BalanceDue:    order.BalanceDue(),
			PaymentStatus: order.PaymentStatus,
		}, nil
	case entity.OrderTypeSalesOrder:
		order, err := uc.salesUC.AddPayment(ctx, in.OrderID, payment)
		if err != nil {
			return nil, err
		}
		return &RecordResult{
			Payment:       payment,
			GrandTotal:    order.GrandTotal,
			AmountPaid:    order.AmountPaid,
			BalanceDue:    order.BalanceDue(),
			PaymentStatus: order.PaymentStatus,
		}, nil
	default:
		return nil, fmt.Errorf("%w: tipo de documento %q desconocido", domain.ErrInvalidInput, in.OrderType)
	}
}
