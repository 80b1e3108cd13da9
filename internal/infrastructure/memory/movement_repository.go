package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos en memoria, append-only.
type MovementRepo struct {
	s  *Store
	tx *state
}

// Create agrega el movimiento y le asigna el siguiente ID.
func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	if err := r.s.fault("create movement"); err != nil {
		return err
	}
	return r.s.write(r.tx, func(st *state) error {
		st.nextID++
		movement.ID = st.nextID
		st.movements = append(st.movements, *movement)
		return nil
	})
}

// List aplica el filtro; toma los Limit más recientes y, con ProductCode, los devuelve en orden cronológico.
func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var list []*entity.Movement
	err := r.s.read(r.tx, func(st *state) error {
		for _, m := range st.movements {
			if filter.ProductCode != "" && m.ProductCode != filter.ProductCode {
				continue
			}
			if !filter.Since.IsZero() && m.CreatedAt.Before(filter.Since) {
				continue
			}
			m := m
			list = append(list, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// más reciente primero
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	if filter.ProductCode != "" {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}
	return list, nil
}
