package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria (dentro o fuera de transacción).
type ProductRepo struct {
	s  *Store
	tx *state
}

// GetByCode obtiene un producto por código; (nil, nil) si no existe.
func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.read(r.tx, func(st *state) error {
		if p, ok := st.products[code]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el lock del store ya es exclusivo; equivale a GetByCode.
func (r *ProductRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

// List devuelve los productos ordenados por nombre.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.s.read(r.tx, func(st *state) error {
		for _, p := range st.products {
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].Code < list[j].Code
	})
	return list, err
}

// Create inserta un producto nuevo; ErrDuplicate si el código ya existe.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	if err := r.s.fault("create product"); err != nil {
		return err
	}
	return r.s.write(r.tx, func(st *state) error {
		if _, ok := st.products[product.Code]; ok {
			return domain.ErrDuplicate
		}
		st.products[product.Code] = *product
		return nil
	})
}

// UpdateCatalog actualiza los campos de catálogo sin tocar el stock.
func (r *ProductRepo) UpdateCatalog(_ context.Context, product *entity.Product) error {
	if err := r.s.fault("update catalog"); err != nil {
		return err
	}
	return r.s.write(r.tx, func(st *state) error {
		p, ok := st.products[product.Code]
		if !ok {
			return fmt.Errorf("update catalog %s: %w", product.Code, domain.ErrNotFound)
		}
		p.Name = product.Name
		p.Category = product.Category
		p.MinStock = product.MinStock
		p.MaxStock = product.MaxStock
		p.UnitCost = product.UnitCost
		p.UpdatedAt = product.UpdatedAt
		st.products[product.Code] = p
		return nil
	})
}

// UpdateStock fija el saldo del producto (usado sólo por el ledger).
// Un saldo negativo se rechaza igual que el CHECK de los stores SQL.
func (r *ProductRepo) UpdateStock(_ context.Context, code string, stock int64) error {
	if err := r.s.fault("update stock"); err != nil {
		return err
	}
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	return r.s.write(r.tx, func(st *state) error {
		p, ok := st.products[code]
		if !ok {
			return fmt.Errorf("update stock %s: %w", code, domain.ErrNotFound)
		}
		p.CurrentStock = stock
		st.products[code] = p
		return nil
	})
}

// Count devuelve la cantidad de productos.
func (r *ProductRepo) Count(_ context.Context) (int, error) {
	n := 0
	err := r.s.read(r.tx, func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}
