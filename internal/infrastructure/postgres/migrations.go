package postgres

import (
	"context"
	"fmt"
)

// Migrate crea las tablas si no existen. Es idempotente: se ejecuta en cada
// arranque de la aplicación.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range migrations {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración %d: %w", i+1, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS parts (
		id              TEXT PRIMARY KEY,
		sku             TEXT NOT NULL UNIQUE,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		price           NUMERIC(14,2) NOT NULL DEFAULT 0,
		cost            NUMERIC(14,2) NOT NULL DEFAULT 0,
		stock_quantity  INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		min_stock_level INT NOT NULL DEFAULT 0,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS suppliers (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		phone          TEXT NOT NULL DEFAULT '',
		email          TEXT NOT NULL DEFAULT '',
		address        TEXT NOT NULL DEFAULT '',
		is_active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS motorcycles (
		id           TEXT PRIMARY KEY,
		customer_id  TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		plate_number TEXT NOT NULL DEFAULT '',
		brand        TEXT NOT NULL DEFAULT '',
		model        TEXT NOT NULL DEFAULT '',
		year         INT NOT NULL DEFAULT 0,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'vendedor',
		status        TEXT NOT NULL DEFAULT 'active',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS purchase_requisitions (
		id                    TEXT PRIMARY KEY,
		requested_by_user_id  TEXT NOT NULL DEFAULT '',
		department            TEXT NOT NULL DEFAULT '',
		status                TEXT NOT NULL,
		total_estimated_value NUMERIC(14,2) NOT NULL DEFAULT 0,
		notes                 TEXT NOT NULL DEFAULT '',
		approved_by_user_id   TEXT NOT NULL DEFAULT '',
		approved_date         TIMESTAMPTZ,
		created_at            TIMESTAMPTZ NOT NULL,
		updated_at            TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS purchase_requisition_items (
		id                       TEXT PRIMARY KEY,
		requisition_id           TEXT NOT NULL REFERENCES purchase_requisitions(id) ON DELETE CASCADE,
		description              TEXT NOT NULL,
		part_id                  TEXT NOT NULL DEFAULT '',
		quantity                 INT NOT NULL CHECK (quantity >= 1),
		estimated_price_per_unit NUMERIC(14,2) NOT NULL DEFAULT 0,
		position                 INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id                      TEXT PRIMARY KEY,
		order_number            TEXT NOT NULL UNIQUE,
		supplier_id             TEXT NOT NULL REFERENCES suppliers(id),
		purchase_requisition_id TEXT NOT NULL DEFAULT '',
		status                  TEXT NOT NULL,
		sub_total               NUMERIC(14,2) NOT NULL DEFAULT 0,
		tax_amount              NUMERIC(14,2) NOT NULL DEFAULT 0,
		shipping_cost           NUMERIC(14,2) NOT NULL DEFAULT 0,
		grand_total             NUMERIC(14,2) NOT NULL DEFAULT 0,
		expected_delivery_date  TIMESTAMPTZ,
		notes                   TEXT NOT NULL DEFAULT '',
		created_by_user_id      TEXT NOT NULL DEFAULT '',
		created_at              TIMESTAMPTZ NOT NULL,
		updated_at              TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS purchase_order_items (
		id                TEXT PRIMARY KEY,
		purchase_order_id TEXT NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
		description       TEXT NOT NULL,
		part_id           TEXT NOT NULL DEFAULT '',
		quantity          INT NOT NULL CHECK (quantity >= 1),
		unit_price        NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_price       NUMERIC(14,2) NOT NULL DEFAULT 0,
		position          INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS goods_receipts (
		id                  TEXT PRIMARY KEY,
		receipt_number      TEXT NOT NULL UNIQUE,
		purchase_order_id   TEXT NOT NULL REFERENCES purchase_orders(id),
		supplier_id         TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL,
		received_date       TIMESTAMPTZ,
		received_by_user_id TEXT NOT NULL DEFAULT '',
		notes               TEXT NOT NULL DEFAULT '',
		stock_credited      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goods_receipt_items (
		id                     TEXT PRIMARY KEY,
		goods_receipt_id       TEXT NOT NULL REFERENCES goods_receipts(id) ON DELETE CASCADE,
		purchase_order_item_id TEXT NOT NULL,
		part_id                TEXT NOT NULL DEFAULT '',
		quantity_ordered       INT NOT NULL DEFAULT 0,
		quantity_received      INT NOT NULL DEFAULT 0 CHECK (quantity_received >= 0),
		position               INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS job_orders (
		id                   TEXT PRIMARY KEY,
		order_number         TEXT NOT NULL UNIQUE,
		customer_id          TEXT NOT NULL,
		customer_name        TEXT NOT NULL DEFAULT '',
		motorcycle_id        TEXT NOT NULL DEFAULT '',
		assigned_mechanic_id TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL,
		discount_amount      NUMERIC(14,2) NOT NULL DEFAULT 0,
		tax_amount           NUMERIC(14,2) NOT NULL DEFAULT 0,
		grand_total          NUMERIC(14,2) NOT NULL DEFAULT 0,
		amount_paid          NUMERIC(14,2) NOT NULL DEFAULT 0,
		payment_status       TEXT NOT NULL DEFAULT 'Unpaid',
		notes                TEXT NOT NULL DEFAULT '',
		created_by_user_id   TEXT NOT NULL DEFAULT '',
		created_at           TIMESTAMPTZ NOT NULL,
		updated_at           TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS job_order_services (
		id           TEXT PRIMARY KEY,
		job_order_id TEXT NOT NULL REFERENCES job_orders(id) ON DELETE CASCADE,
		service_id   TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL,
		labor_cost   NUMERIC(14,2) NOT NULL DEFAULT 0,
		position     INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS job_order_parts (
		id             TEXT PRIMARY KEY,
		job_order_id   TEXT NOT NULL REFERENCES job_orders(id) ON DELETE CASCADE,
		part_id        TEXT NOT NULL,
		part_name      TEXT NOT NULL DEFAULT '',
		quantity       INT NOT NULL CHECK (quantity >= 1),
		price_per_unit NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_price    NUMERIC(14,2) NOT NULL DEFAULT 0,
		position       INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS sales_orders (
		id                 TEXT PRIMARY KEY,
		order_number       TEXT NOT NULL UNIQUE,
		customer_id        TEXT NOT NULL DEFAULT '',
		customer_name      TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL,
		discount_amount    NUMERIC(14,2) NOT NULL DEFAULT 0,
		tax_amount         NUMERIC(14,2) NOT NULL DEFAULT 0,
		grand_total        NUMERIC(14,2) NOT NULL DEFAULT 0,
		amount_paid        NUMERIC(14,2) NOT NULL DEFAULT 0,
		payment_status     TEXT NOT NULL DEFAULT 'Unpaid',
		notes              TEXT NOT NULL DEFAULT '',
		created_by_user_id TEXT NOT NULL DEFAULT '',
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sales_order_items (
		id             TEXT PRIMARY KEY,
		sales_order_id TEXT NOT NULL REFERENCES sales_orders(id) ON DELETE CASCADE,
		part_id        TEXT NOT NULL,
		part_name      TEXT NOT NULL DEFAULT '',
		quantity       INT NOT NULL CHECK (quantity >= 1),
		price_per_unit NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_price    NUMERIC(14,2) NOT NULL DEFAULT 0,
		position       INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id                   TEXT PRIMARY KEY,
		order_id             TEXT NOT NULL,
		order_type           TEXT NOT NULL,
		amount               NUMERIC(14,2) NOT NULL CHECK (amount > 0),
		payment_date         TIMESTAMPTZ NOT NULL,
		method               TEXT NOT NULL DEFAULT 'Cash',
		notes                TEXT NOT NULL DEFAULT '',
		processed_by_user_id TEXT NOT NULL DEFAULT '',
		created_at           TIMESTAMPTZ NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_goods_receipts_po ON goods_receipts(purchase_order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_motorcycles_customer ON motorcycles(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_supplier ON purchase_orders(supplier_id)`,
	`CREATE INDEX IF NOT EXISTS idx_job_orders_customer ON job_orders(customer_id)`,
}
