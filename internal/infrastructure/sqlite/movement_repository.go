package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos append-only sobre SQLite.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna el ID autoincremental.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO movements (transaction_id, product_code, kind, quantity, reason, balance_before, balance_after, user_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.TransactionID, m.ProductCode, string(m.Kind), m.Quantity, m.Reason,
		m.BalanceBefore, m.BalanceAfter, m.User, formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("movement id: %w", err)
	}
	m.ID = id
	return nil
}

// List toma los Limit más recientes del filtro; con ProductCode los devuelve en orden cronológico.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		where []string
		args  []any
	)
	if f.ProductCode != "" {
		where = append(where, "product_code = ?")
		args = append(args, f.ProductCode)
	}
	if !f.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, formatTime(f.Since))
	}

	query := `SELECT id, transaction_id, product_code, kind, quantity, reason, balance_before, balance_after, user_name, created_at
		FROM movements`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	if f.ProductCode != "" {
		query = `SELECT * FROM (` + query + `) ORDER BY created_at ASC, id ASC`
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var (
			m             entity.Movement
			kind, created string
		)
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductCode, &kind, &m.Quantity, &m.Reason,
			&m.BalanceBefore, &m.BalanceAfter, &m.User, &created); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		if m.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
