package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `code, name, category, current_stock, min_stock, max_stock, unit_cost, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByCode obtiene un producto por código; (nil, nil) si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1 FOR UPDATE`, code)
}

func (r *ProductRepo) get(ctx context.Context, query, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List devuelve los productos ordenados por nombre y código.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter.Category != "" {
		query += ` WHERE category = $1`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY name, code`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.Code, p.Name, p.Category, p.CurrentStock, p.MinStock, p.MaxStock, p.UnitCost, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateCatalog actualiza los campos de catálogo sin tocar current_stock.
func (r *ProductRepo) UpdateCatalog(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, min_stock = $4, max_stock = $5, unit_cost = $6, updated_at = $7
		WHERE code = $1`
	tag, err := r.q.Exec(ctx, query, p.Code, p.Name, p.Category, p.MinStock, p.MaxStock, p.UnitCost, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update catalog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update catalog %s: %w", p.Code, domain.ErrNotFound)
	}
	return nil
}

// UpdateStock fija el saldo (usado sólo por el ledger).
func (r *ProductRepo) UpdateStock(ctx context.Context, code string, stock int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET current_stock = $2, updated_at = NOW() WHERE code = $1`, code, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock %s: %w", code, domain.ErrNotFound)
	}
	return nil
}

// Count devuelve la cantidad de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.Code, &p.Name, &p.Category, &p.CurrentStock, &p.MinStock, &p.MaxStock,
		&p.UnitCost, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
