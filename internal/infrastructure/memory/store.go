// Package memory implementa el store en memoria: repositorios de productos y movimientos
// y un TxRunner con semántica todo-o-nada (copia del estado, commit por reemplazo).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

// Verify interface compliance
var _ inventory.TxRunner = (*Store)(nil)

// Store guarda productos y movimientos en memoria.
// Las transacciones toman el lock de escritura completo: un solo escritor a la vez.
type Store struct {
	mu sync.RWMutex
	st *state

	// Fault, si no es nil, se consulta antes de cada escritura; un error simula una falla de E/S.
	Fault func(op string) error
}

type state struct {
	products  map[string]entity.Product
	movements []entity.Movement
	nextID    int64
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]entity.Product, len(s.products)),
		movements: make([]entity.Movement, len(s.movements)),
		nextID:    s.nextID,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	copy(c.movements, s.movements)
	return c
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: &state{products: make(map[string]entity.Product)}}
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements devuelve el repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Run ejecuta fn sobre una copia del estado; sólo si fn termina sin error la copia reemplaza al estado.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	if err := fn(&ProductRepo{s: s, tx: tx}, &MovementRepo{s: s, tx: tx}); err != nil {
		return err
	}
	if err := s.fault("commit"); err != nil {
		return err
	}
	s.st = tx
	return nil
}

func (s *Store) fault(op string) error {
	if s.Fault == nil {
		return nil
	}
	return s.Fault(op)
}

// read ejecuta fn sobre el estado visible: el de la tx si existe, si no el confirmado con RLock.
func (s *Store) read(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// write ejecuta fn con exclusión. Fuera de tx, la escritura se confirma de inmediato.
func (s *Store) write(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}
