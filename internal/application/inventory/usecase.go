package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/TallerMotos-api/internal/application/dto"
	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
	"github.com/jhoicas/TallerMotos-api/pkg/logger"
)

// StockUseCase es el libro mayor de inventario: toda lectura y mutación de
// StockQuantity pasa por aquí. Los stores de documentos (recepciones, órdenes
// de trabajo, ventas) nunca asignan stock directamente.
type StockUseCase struct {
	txRunner TxRunner
	partRepo repository.PartRepository
	log      *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, partRepo repository.PartRepository, log *logger.Logger) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, partRepo: partRepo, log: log}
}

// Get devuelve un repuesto con su stock vigente.
func (uc *StockUseCase) Get(ctx context.Context, partID string) (*entity.Part, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

// Adjust aplica un delta de stock a un repuesto dentro de una transacción con
// bloqueo de fila. Delta positivo acredita (recepción, ajuste manual ADD);
// negativo debita (venta, ajuste manual REMOVE). Falla con ErrInsufficientStock
// si el débito dejaría el stock negativo; ninguna operación deja stock < 0.
func (uc *StockUseCase) Adjust(ctx context.Context, partID string, delta int, reason, userID string) (*entity.Part, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta cero", domain.ErrInvalidInput)
	}
	var adjusted *entity.Part
	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository) error {
		part, err := applyDelta(partRepo, partID, delta, time.Now())
		if err != nil {
			return err
		}
		adjusted = part
		return nil
	})
	if err != nil {
		return nil, err
	}
	// La razón del ajuste solo se notifica; no se persiste.
	uc.log.Info().
		Str("part_id", partID).
		Int("delta", delta).
		Int("stock", adjusted.StockQuantity).
		Str("reason", reason).
		Str("user_id", userID).
		Msg("ajuste de stock aplicado")
	return adjusted, nil
}

// AdjustFromRequest adapta el request HTTP (ADD/REMOVE + cantidad) al ajuste.
func (uc *StockUseCase) AdjustFromRequest(ctx context.Context, partID, userID string, in dto.AdjustStockRequest) (*entity.Part, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad del ajuste debe ser positiva", domain.ErrInvalidInput)
	}
	delta := in.Quantity
	switch in.Adjustment {
	case dto.StockAdjustmentAdd:
	case dto.StockAdjustmentRemove:
		delta = -delta
	default:
		return nil, fmt.Errorf("%w: ajuste %q desconocido", domain.ErrInvalidInput, in.Adjustment)
	}
	return uc.Adjust(ctx, partID, delta, in.Reason, userID)
}

// CreditInTx acredita stock usando el repositorio del caller (misma
// transacción). Lo invoca la recepción de mercancía al pasar a Completed.
func (uc *StockUseCase) CreditInTx(partRepo repository.PartRepository, partID string, quantity int, now time.Time) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: crédito de stock con cantidad %d", domain.ErrInvalidInput, quantity)
	}
	_, err := applyDelta(partRepo, partID, quantity, now)
	return err
}

// DebitInTx debita stock usando el repositorio del caller (misma transacción).
// Lo invocan las órdenes de trabajo y ventas al consumir repuestos; si retorna
// ErrInsufficientStock el caller debe hacer rollback del documento completo.
func (uc *StockUseCase) DebitInTx(partRepo repository.PartRepository, partID string, quantity int, now time.Time) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: débito de stock con cantidad %d", domain.ErrInvalidInput, quantity)
	}
	_, err := applyDelta(partRepo, partID, -quantity, now)
	return err
}

// applyDelta bloquea la fila del repuesto, valida la precondición de stock no
// negativo y confirma el nuevo valor.
func applyDelta(partRepo repository.PartRepository, partID string, delta int, now time.Time) (*entity.Part, error) {
	part, err := partRepo.GetForUpdate(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, partID)
	}
	newQty := part.StockQuantity + delta
	if newQty < 0 {
		return nil, fmt.Errorf("%w: repuesto %s con stock %d, se pidió debitar %d",
			domain.ErrInsufficientStock, partID, part.StockQuantity, -delta)
	}
	part.StockQuantity = newQty
	part.UpdatedAt = now
	if err := partRepo.UpdateStock(part.ID, newQty); err != nil {
		return nil, err
	}
	return part, nil
}
