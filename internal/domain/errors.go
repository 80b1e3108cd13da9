package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("producto no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrSourceUnavailable = errors.New("fuente de productos no disponible")
)

// SchemaError indica que la fuente de productos no trae todas las columnas obligatorias.
// La ingesta se aborta completa: no se devuelve ninguna fila.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("columnas faltantes en la fuente: %s", strings.Join(e.Missing, ", "))
}

// StoreError envuelve una falla de E/S del almacenamiento subyacente.
// Cuando la devuelve el ledger, la transacción ya fue revertida.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError construye un StoreError; si err ya es StoreError lo devuelve tal cual.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError informa si err (o alguno de sus envueltos) es un StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
