package inventory

import (
	"math"

	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
)

// NextBalance calcula el saldo resultante de aplicar un movimiento (servicio de dominio).
// Una salida mayor al saldo devuelve ErrInsufficientStock; el saldo nunca queda negativo.
// Una entrada que desbordaría int64 devuelve ErrInvalidInput.
func NextBalance(before int64, kind entity.MovementKind, quantity int64) (int64, error) {
	if quantity <= 0 {
		return before, domain.ErrInvalidInput
	}
	switch kind {
	case entity.MovementInbound:
		if quantity > math.MaxInt64-before {
			return before, domain.ErrInvalidInput
		}
		return before + quantity, nil
	case entity.MovementOutbound:
		if quantity > before {
			return before, domain.ErrInsufficientStock
		}
		return before - quantity, nil
	}
	return before, domain.ErrInvalidInput
}
