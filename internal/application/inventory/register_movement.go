package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

// DefaultUser usuario registrado en el movimiento cuando la petición no trae uno.
const DefaultUser = "api"

// RegisterMovementUseCase es el ledger: único dueño del saldo de cada producto.
// Cada Apply lee el saldo con bloqueo de fila, valida, actualiza el producto y agrega el
// movimiento dentro de una sola transacción (Commit/Rollback vía TxRunner).
type RegisterMovementUseCase struct {
	txRunner TxRunner
	locks    *keyedMutex
	log      zerolog.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, log zerolog.Logger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		locks:    newKeyedMutex(),
		log:      log,
		now:      time.Now,
	}
}

// MovementInput entrada para aplicar un movimiento.
type MovementInput struct {
	Code     string
	Kind     entity.MovementKind
	Quantity int64
	Reason   string
	User     string
}

// Apply aplica el movimiento y devuelve el registro creado.
// Errores: ErrInvalidInput, ErrNotFound, ErrInsufficientStock (sin mutación) o *domain.StoreError.
func (uc *RegisterMovementUseCase) Apply(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Kind != entity.MovementInbound && input.Kind != entity.MovementOutbound {
		return nil, domain.ErrInvalidInput
	}
	user := strings.TrimSpace(input.User)
	if user == "" {
		user = DefaultUser
	}

	unlock := uc.locks.Lock(code)
	defer unlock()

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, code)
		if err != nil {
			return domain.NewStoreError("leer producto", err)
		}
		if product == nil {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, code)
		}

		after, err := inventory.NextBalance(product.CurrentStock, input.Kind, input.Quantity)
		if err != nil {
			return err
		}

		if err := productRepo.UpdateStock(ctx, code, after); err != nil {
			return domain.NewStoreError("actualizar saldo", err)
		}
		mov := &entity.Movement{
			TransactionID: uuid.New().String(),
			ProductCode:   code,
			Kind:          input.Kind,
			Quantity:      input.Quantity,
			Reason:        strings.TrimSpace(input.Reason),
			BalanceBefore: product.CurrentStock,
			BalanceAfter:  after,
			User:          user,
			CreatedAt:     uc.now().UTC(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return domain.NewStoreError("registrar movimiento", err)
		}
		created = mov
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrInvalidInput) {
			uc.log.Warn().Err(err).
				Str("code", code).
				Str("kind", string(input.Kind)).
				Int64("quantity", input.Quantity).
				Msg("movimiento rechazado")
			return nil, err
		}
		err = domain.NewStoreError("aplicar movimiento", err)
		uc.log.Error().Err(err).Str("code", code).Msg("movimiento revertido")
		return nil, err
	}

	uc.log.Info().
		Int64("id", created.ID).
		Str("code", code).
		Str("kind", string(created.Kind)).
		Int64("quantity", created.Quantity).
		Int64("balance_before", created.BalanceBefore).
		Int64("balance_after", created.BalanceAfter).
		Str("user", created.User).
		Msg("movimiento registrado")
	return created, nil
}
