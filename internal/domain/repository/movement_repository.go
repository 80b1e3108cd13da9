package repository

import (
	"context"
	"time"

	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
)

// MovementFilter filtros para el historial.
// Con ProductCode el orden es cronológico; sin él, del más reciente al más antiguo.
type MovementFilter struct {
	ProductCode string
	Since       time.Time
	Limit       int // 0 = sin límite
}

// MovementRepository define el puerto de persistencia append-only para movimientos.
type MovementRepository interface {
	// Create inserta el movimiento y asigna su ID autoincremental.
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
