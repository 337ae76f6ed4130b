package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/TallerMotos-api/internal/application/inventory"
	"github.com/jhoicas/TallerMotos-api/internal/application/orders"
	"github.com/jhoicas/TallerMotos-api/internal/application/purchasing"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los repos entregados a fn quedan atados a la transacción; el bloqueo de
// fila de GetForUpdate más el commit/rollback dan la atomicidad que piden
// los casos de uso.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de repuestos atado a la tx
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(partRepo repository.PartRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPartRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchasing inicia una transacción con los repos del circuito de compras
// (requisiciones, órdenes de compra, recepciones) más el de repuestos.
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	requisitionRepo repository.RequisitionRepository,
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewPartRepository(tx),
		NewRequisitionRepository(tx),
		NewPurchaseOrderRepository(tx),
		NewGoodsReceiptRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrders inicia una transacción con los repos de órdenes de trabajo,
// ventas y pagos más el de repuestos.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	jobRepo repository.JobOrderRepository,
	salesRepo repository.SalesOrderRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewPartRepository(tx),
		NewJobOrderRepository(tx),
		NewSalesOrderRepository(tx),
		NewPaymentRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
