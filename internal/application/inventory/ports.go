package inventory

import (
	"context"

	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando repositorios atados a esa tx.
// Si fn devuelve error, nada de lo escrito dentro de la tx queda visible (Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}
