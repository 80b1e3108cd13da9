package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/semaforo-stock/pkg/config"
)

// Requiere TEST_DATABASE_URL apuntando a una base descartable.
func TestPostgresStore_Ledger(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE movements, products RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	products := postgres.NewProductRepository(pool)
	now := time.Now().UTC()
	require.NoError(t, products.Create(ctx, &entity.Product{
		Code: "P001", Name: "Produto A", Category: "Eletrônicos",
		CurrentStock: 150, MinStock: 50, MaxStock: 300,
		UnitCost: decimal.RequireFromString("25.50"), CreatedAt: now, UpdatedAt: now,
	}))
	assert.ErrorIs(t, products.Create(ctx, &entity.Product{Code: "P001", Name: "x"}), domain.ErrDuplicate)

	ledger := inventory.NewRegisterMovementUseCase(postgres.NewTxRunner(pool), zerolog.Nop())
	m, err := ledger.Apply(ctx, inventory.MovementInput{Code: "P001", Kind: entity.MovementInbound, Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(200), m.BalanceAfter)
	assert.Positive(t, m.ID)

	_, err = ledger.Apply(ctx, inventory.MovementInput{Code: "P001", Kind: entity.MovementOutbound, Quantity: 300})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err := products.GetByCode(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, int64(200), p.CurrentStock)
	assert.True(t, decimal.RequireFromString("25.50").Equal(p.UnitCost))

	list, err := postgres.NewMovementRepository(pool).List(ctx, repository.MovementFilter{ProductCode: "P001"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementInbound, list[0].Kind)
}
