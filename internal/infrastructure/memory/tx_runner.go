package memory

import (
	"context"

	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// TxRunner ejecuta funciones transaccionales sobre el store en memoria.
// Toma el mutex durante toda la transacción (serializa a los escritores,
// el equivalente del FOR UPDATE de Postgres) y hace snapshot del estado:
// si fn retorna error, restaura el snapshot (rollback).
//
// Implementa los puertos TxRunner de inventory, purchasing y orders.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner sobre el store dado.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (t *TxRunner) run(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snap := t.s.snapshot()
	if err := fn(); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(partRepo repository.PartRepository) error) error {
	return t.run(ctx, func() error {
		return fn(&PartRepo{s: t.s})
	})
}

// RunPurchasing implementa purchasing.TxRunner.
func (t *TxRunner) RunPurchasing(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	requisitionRepo repository.RequisitionRepository,
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
) error) error {
	return t.run(ctx, func() error {
		return fn(
			&PartRepo{s: t.s},
			&RequisitionRepo{s: t.s},
			&PurchaseOrderRepo{s: t.s},
			&GoodsReceiptRepo{s: t.s},
		)
	})
}

// RunOrders implementa orders.TxRunner.
func (t *TxRunner) RunOrders(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	jobRepo repository.JobOrderRepository,
	salesRepo repository.SalesOrderRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return t.run(ctx, func() error {
		return fn(
			&PartRepo{s: t.s},
			&JobOrderRepo{s: t.s},
			&SalesOrderRepo{s: t.s},
			&PaymentRepo{s: t.s},
		)
	})
}
