package orders

import (
	"context"
	"time"

	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de órdenes, pagos y repuestos: la creación de una orden debita
// inventario y siembra el pago inicial de forma atómica.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		jobRepo repository.JobOrderRepository,
		salesRepo repository.SalesOrderRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InventoryUseCase integra órdenes con inventario: DebitInTx debita stock
// usando el repositorio del caller (misma transacción). Si retorna
// ErrInsufficientStock, el caller hace rollback del documento completo.
type InventoryUseCase interface {
	DebitInTx(partRepo repository.PartRepository, partID string, quantity int, now time.Time) error
}

// ReceiptPDFGenerator genera los comprobantes imprimibles de las órdenes.
type ReceiptPDFGenerator interface {
	GenerateJobOrderPDF(ctx context.Context, order *entity.JobOrder) ([]byte, error)
	GenerateSalesOrderPDF(ctx context.Context, order *entity.SalesOrder) ([]byte, error)
}
