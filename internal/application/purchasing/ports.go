package purchasing

import (
	"context"
	"time"

	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios del circuito de compras más el de repuestos (para acreditar
// stock al completar una recepción en la misma transacción).
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		requisitionRepo repository.RequisitionRepository,
		poRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
	) error) error
}

// InventoryUseCase integra compras con inventario: CreditInTx acredita stock
// usando el repositorio del caller (misma transacción). Si retorna error el
// caller debe hacer rollback.
type InventoryUseCase interface {
	CreditInTx(partRepo repository.PartRepository, partID string, quantity int, now time.Time) error
}
