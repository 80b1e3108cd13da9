package inventory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/memory"
)

// newLedger store en memoria con P001 (150) y P008 (15).
func newLedger(t *testing.T) (*memory.Store, *inventory.RegisterMovementUseCase) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	for _, p := range []entity.Product{
		{Code: "P001", Name: "Produto A", Category: "Eletrônicos", CurrentStock: 150, MinStock: 50, MaxStock: 300, UnitCost: decimal.RequireFromString("25.50")},
		{Code: "P008", Name: "Produto H", Category: "Livros", CurrentStock: 15, MinStock: 20, MaxStock: 100, UnitCost: decimal.RequireFromString("35.00")},
	} {
		p := p
		require.NoError(t, store.Products().Create(ctx, &p))
	}
	return store, inventory.NewRegisterMovementUseCase(store, zerolog.Nop())
}

func stockOf(t *testing.T, store *memory.Store, code string) int64 {
	t.Helper()
	p, err := store.Products().GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func TestApply_Entrada(t *testing.T) {
	store, uc := newLedger(t)

	mov, err := uc.Apply(context.Background(), inventory.MovementInput{
		Code: "P001", Kind: entity.MovementInbound, Quantity: 50, Reason: "compra",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(150), mov.BalanceBefore)
	assert.Equal(t, int64(200), mov.BalanceAfter)
	assert.Equal(t, inventory.DefaultUser, mov.User)
	assert.NotEmpty(t, mov.TransactionID)
	assert.NotZero(t, mov.ID)
	assert.Equal(t, int64(200), stockOf(t, store, "P001"))
}

func TestApply_SalidaInsuficiente_NoMuta(t *testing.T) {
	store, uc := newLedger(t)

	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		Code: "P001", Kind: entity.MovementOutbound, Quantity: 300,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(150), stockOf(t, store, "P001"))

	list, err := store.Movements().List(context.Background(), repositoryFilter("P001"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApply_SalidaExacta_DejaCero(t *testing.T) {
	store, uc := newLedger(t)

	mov, err := uc.Apply(context.Background(), inventory.MovementInput{
		Code: "P008", Kind: entity.MovementOutbound, Quantity: 15,
	})
	require.NoError(t, err)
	assert.Zero(t, mov.BalanceAfter)
	assert.Zero(t, stockOf(t, store, "P008"))
}

func TestApply_CodigoInexistente(t *testing.T) {
	_, uc := newLedger(t)

	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		Code: "UNKNOWN", Kind: entity.MovementInbound, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_EntradaInvalida(t *testing.T) {
	store, uc := newLedger(t)
	ctx := context.Background()

	cases := map[string]inventory.MovementInput{
		"cantidad cero":     {Code: "P001", Kind: entity.MovementInbound, Quantity: 0},
		"cantidad negativa": {Code: "P001", Kind: entity.MovementOutbound, Quantity: -5},
		"código vacío":      {Code: "  ", Kind: entity.MovementInbound, Quantity: 1},
		"tipo desconocido":  {Code: "P001", Kind: "transfer", Quantity: 1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Apply(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, int64(150), stockOf(t, store, "P001"))
}

func TestApply_SecuenciaMixta_SaldoYHistorial(t *testing.T) {
	store, uc := newLedger(t)
	ctx := context.Background()

	steps := []struct {
		kind entity.MovementKind
		qty  int64
	}{
		{entity.MovementInbound, 40},
		{entity.MovementOutbound, 100},
		{entity.MovementOutbound, 25},
		{entity.MovementInbound, 7},
		{entity.MovementOutbound, 72},
		{entity.MovementInbound, 1},
		{entity.MovementOutbound, 1},
		{entity.MovementInbound, 300},
	}
	want := int64(150)
	for i, st := range steps {
		mov, err := uc.Apply(ctx, inventory.MovementInput{Code: "P001", Kind: st.kind, Quantity: st.qty})
		require.NoError(t, err, "paso %d", i)
		assert.Equal(t, want, mov.BalanceBefore, "paso %d", i)
		if st.kind == entity.MovementInbound {
			want += st.qty
		} else {
			want -= st.qty
		}
		assert.Equal(t, want, mov.BalanceAfter, "paso %d", i)
	}

	assert.Equal(t, int64(300), want)
	assert.Equal(t, want, stockOf(t, store, "P001"))

	list, err := store.Movements().List(ctx, repositoryFilter("P001"))
	require.NoError(t, err)
	require.Len(t, list, len(steps))
	assert.Equal(t, int64(150), list[0].BalanceBefore)
	assert.Equal(t, want, list[len(list)-1].BalanceAfter)
	for i := 1; i < len(list); i++ {
		assert.Equal(t, list[i-1].BalanceAfter, list[i].BalanceBefore)
	}
}

func TestApply_EntradaQueDesborda_NoMuta(t *testing.T) {
	store, uc := newLedger(t)

	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		Code: "P001", Kind: entity.MovementInbound, Quantity: math.MaxInt64,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(150), stockOf(t, store, "P001"))

	list, err := store.Movements().List(context.Background(), repositoryFilter("P001"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApply_FallaDeStore_Revierte(t *testing.T) {
	store, uc := newLedger(t)
	store.Fault = func(op string) error {
		if op == "create movement" {
			return errors.New("disco lleno")
		}
		return nil
	}

	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		Code: "P001", Kind: entity.MovementInbound, Quantity: 10,
	})
	require.Error(t, err)
	assert.True(t, domain.IsStoreError(err))
	assert.Equal(t, int64(150), stockOf(t, store, "P001"), "el saldo no cambia si el movimiento no se registró")
}

func TestApply_Concurrente_NuncaNegativo(t *testing.T) {
	store, uc := newLedger(t)
	ctx := context.Background()

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Apply(ctx, inventory.MovementInput{Code: "P008", Kind: entity.MovementOutbound, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 15, ok)
	assert.Equal(t, 15, rejected)
	assert.Zero(t, stockOf(t, store, "P008"))

	// cada movimiento encadena con el anterior
	list, err := store.Movements().List(ctx, repositoryFilter("P008"))
	require.NoError(t, err)
	require.Len(t, list, 15)
	for i := 1; i < len(list); i++ {
		assert.Equal(t, list[i-1].BalanceAfter, list[i].BalanceBefore)
	}
}

func TestApplyFromRequest_Alias(t *testing.T) {
	_, uc := newLedger(t)

	out, err := uc.ApplyFromRequest(context.Background(), "maria", dtoRequest("P001", "saida", 10))
	require.NoError(t, err)
	assert.Equal(t, "outbound", out.Type)
	assert.Equal(t, "maria", out.User)
	assert.Equal(t, int64(140), out.BalanceAfter)

	_, err = uc.ApplyFromRequest(context.Background(), "", dtoRequest("P001", "transfer", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
