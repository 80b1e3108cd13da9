package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema es idempotente: se aplica en cada arranque.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		code          TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		category      TEXT NOT NULL DEFAULT '',
		current_stock BIGINT NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
		min_stock     BIGINT NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
		max_stock     BIGINT NOT NULL DEFAULT 0 CHECK (max_stock >= 0),
		unit_cost     NUMERIC(14, 2) NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id             BIGSERIAL PRIMARY KEY,
		transaction_id TEXT NOT NULL,
		product_code   TEXT NOT NULL REFERENCES products (code),
		kind           TEXT NOT NULL CHECK (kind IN ('inbound', 'outbound')),
		quantity       BIGINT NOT NULL CHECK (quantity > 0),
		reason         TEXT NOT NULL DEFAULT '',
		balance_before BIGINT NOT NULL,
		balance_after  BIGINT NOT NULL CHECK (balance_after >= 0),
		user_name      TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_created ON movements (product_code, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_created ON movements (created_at DESC)`,
}

// Migrate crea las tablas e índices si no existen.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
