// Package storage abre el almacenamiento elegido por STORE_DRIVER y expone sus repositorios.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/memory"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/sqlite"
	"github.com/jhoicas/semaforo-stock/pkg/config"
)

// Store repositorios fuera de tx + TxRunner del driver elegido.
type Store struct {
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Tx        inventory.TxRunner

	ping  func(ctx context.Context) error
	close func()
}

// Ping verifica que el almacenamiento responda.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close libera conexiones.
func (s *Store) Close() { s.close() }

// Open abre el almacenamiento según STORE_DRIVER y aplica el esquema.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrar PostgreSQL: %w", err)
		}
		return &Store{
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil

	case config.DriverMemory:
		s := memory.NewStore()
		return &Store{
			Products:  s.Products(),
			Movements: s.Movements(),
			Tx:        s,
			ping:      func(context.Context) error { return nil },
			close:     func() {},
		}, nil

	default:
		s, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir SQLite %s: %w", cfg.Store.SQLitePath, err)
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migrar SQLite: %w", err)
		}
		return &Store{
			Products:  s.Products(),
			Movements: s.Movements(),
			Tx:        s,
			ping:      s.DB().PingContext,
			close:     func() { _ = s.Close() },
		}, nil
	}
}
