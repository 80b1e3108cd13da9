// Package sqlite implementa el store por defecto sobre SQLite (modernc.org/sqlite, sin cgo).
// Las transacciones se abren con BEGIN IMMEDIATE: un solo escritor a la vez por archivo.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

// Ensure Store implements inventory.TxRunner.
var _ inventory.TxRunner = (*Store)(nil)

// MemoryPath abre una base en memoria (pruebas y demos).
const MemoryPath = ":memory:"

// timeLayout ancho fijo: el orden lexicográfico coincide con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Querier es lo común entre *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store base SQLite con repositorios y TxRunner.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base en path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if path == MemoryPath || strings.Contains(path, "mode=memory") {
		// cada conexión a :memory: es una base distinta
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Store{db: db}, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Set("_txlock", "immediate")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	if path != MemoryPath {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + path + "?" + q.Encode()
}

// DB expone la conexión subyacente.
func (s *Store) DB() *sql.DB { return s.db }

// Close cierra la base.
func (s *Store) Close() error { return s.db.Close() }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return NewProductRepository(s.db) }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return NewMovementRepository(s.db) }

// Run ejecuta fn con repos atados a una transacción y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewProductRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t.UTC(), nil
}

func sqliteCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	c := sqliteCode(err)
	return c == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || c == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func isCheckViolation(err error) bool {
	return sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_CHECK
}
