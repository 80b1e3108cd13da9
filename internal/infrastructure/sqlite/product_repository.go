package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `code, name, category, current_stock, min_stock, max_stock, unit_cost, created_at, updated_at`

// ProductRepo productos sobre SQLite (usable con *sql.DB o *sql.Tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el repositorio.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByCode obtiene un producto por código; (nil, nil) si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE code = ?`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate la tx ya tiene el lock de escritura (BEGIN IMMEDIATE); equivale a GetByCode.
func (r *ProductRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

// List devuelve los productos ordenados por nombre y código.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY name, code`

	rows, err := r.q.QueryContext(ctx, query, args...)
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
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Code, p.Name, p.Category, p.CurrentStock, p.MinStock, p.MaxStock,
		p.UnitCost.String(), formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
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
	res, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET name = ?, category = ?, min_stock = ?, max_stock = ?, unit_cost = ?, updated_at = ?
		WHERE code = ?`,
		p.Name, p.Category, p.MinStock, p.MaxStock, p.UnitCost.String(), formatTime(p.UpdatedAt), p.Code,
	)
	if err != nil {
		return fmt.Errorf("update catalog: %w", err)
	}
	return expectOne(res, "update catalog", p.Code)
}

// UpdateStock fija el saldo (usado sólo por el ledger).
func (r *ProductRepo) UpdateStock(ctx context.Context, code string, stock int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET current_stock = ?, updated_at = ? WHERE code = ?`,
		stock, formatTime(time.Now()), code)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", err)
	}
	return expectOne(res, "update stock", code)
}

// Count devuelve la cantidad de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*entity.Product, error) {
	var (
		p                entity.Product
		cost             string
		created, updated string
	)
	if err := row.Scan(&p.Code, &p.Name, &p.Category, &p.CurrentStock, &p.MinStock, &p.MaxStock,
		&cost, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if p.UnitCost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("unit_cost de %s: %w", p.Code, err)
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}

func expectOne(res sql.Result, op, code string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, code, domain.ErrNotFound)
	}
	return nil
}
