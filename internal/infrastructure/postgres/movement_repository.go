package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos append-only sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna el ID generado por la secuencia.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (transaction_id, product_code, kind, quantity, reason, balance_before, balance_after, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.TransactionID, m.ProductCode, string(m.Kind), m.Quantity, m.Reason,
		m.BalanceBefore, m.BalanceAfter, m.User, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List toma los Limit más recientes del filtro; con ProductCode los devuelve en orden cronológico.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		where []string
		args  []any
	)
	if f.ProductCode != "" {
		args = append(args, f.ProductCode)
		where = append(where, fmt.Sprintf("product_code = $%d", len(args)))
	}
	if !f.Since.IsZero() {
		args = append(args, f.Since)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := `SELECT id, transaction_id, product_code, kind, quantity, reason, balance_before, balance_after, user_name, created_at
		FROM movements`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.ProductCode != "" {
		query = `SELECT * FROM (` + query + `) recent ORDER BY created_at ASC, id ASC`
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var (
			m    entity.Movement
			kind string
		)
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductCode, &kind, &m.Quantity, &m.Reason,
			&m.BalanceBefore, &m.BalanceAfter, &m.User, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		list = append(list, &m)
	}
	return list, rows.Err()
}
