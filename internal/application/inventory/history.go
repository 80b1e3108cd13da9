package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

// DefaultHistoryWindow ventana por defecto del historial: 30 días.
const DefaultHistoryWindow = 30 * 24 * time.Hour

// HistoryUseCase consulta el historial de movimientos (sólo lectura, no toma locks del ledger).
type HistoryUseCase struct {
	movRepo       repository.MovementRepository
	defaultWindow time.Duration
	now           func() time.Time
}

// NewHistoryUseCase construye el caso de uso. window <= 0 usa DefaultHistoryWindow.
func NewHistoryUseCase(movRepo repository.MovementRepository, window time.Duration) *HistoryUseCase {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	return &HistoryUseCase{movRepo: movRepo, defaultWindow: window, now: time.Now}
}

// HistoryQuery Code vacío = todos los productos; Since <= 0 usa la ventana por defecto.
type HistoryQuery struct {
	Code  string
	Since time.Duration
	Limit int
}

// History devuelve los movimientos dentro de la ventana.
// Con Code: orden cronológico. Sin Code: del más reciente al más antiguo.
func (uc *HistoryUseCase) History(ctx context.Context, q HistoryQuery) ([]*entity.Movement, error) {
	if q.Limit < 0 {
		return nil, domain.ErrInvalidInput
	}
	window := q.Since
	if window <= 0 {
		window = uc.defaultWindow
	}
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ProductCode: strings.TrimSpace(q.Code),
		Since:       uc.now().Add(-window).UTC(),
		Limit:       q.Limit,
	})
	if err != nil {
		return nil, domain.NewStoreError("historial", err)
	}
	if list == nil {
		list = []*entity.Movement{}
	}
	return list, nil
}
