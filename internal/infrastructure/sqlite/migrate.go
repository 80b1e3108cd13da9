package sqlite

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		code          TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		category      TEXT NOT NULL DEFAULT '',
		current_stock INTEGER NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
		min_stock     INTEGER NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
		max_stock     INTEGER NOT NULL DEFAULT 0 CHECK (max_stock >= 0),
		unit_cost     TEXT NOT NULL DEFAULT '0',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		transaction_id TEXT NOT NULL,
		product_code   TEXT NOT NULL REFERENCES products (code),
		kind           TEXT NOT NULL CHECK (kind IN ('inbound', 'outbound')),
		quantity       INTEGER NOT NULL CHECK (quantity > 0),
		reason         TEXT NOT NULL DEFAULT '',
		balance_before INTEGER NOT NULL,
		balance_after  INTEGER NOT NULL CHECK (balance_after >= 0),
		user_name      TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_created ON movements (product_code, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_created ON movements (created_at)`,
}

// Migrate crea las tablas e índices si no existen.
func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
