package repository

import (
	"context"

	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
)

// ProductFilter filtros de listado. Campos vacíos no filtran.
type ProductFilter struct {
	Category string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByCode devuelve (nil, nil) si el código no existe.
type ProductRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	// UpdateCatalog actualiza nombre, categoría, mínimos, máximos y costo; nunca el stock.
	UpdateCatalog(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, code string, stock int64) error
	Count(ctx context.Context) (int, error)
}
