package entity

import (
	"strings"
	"time"
)

// MovementKind tipo de movimiento de stock.
type MovementKind string

// Tipos de movimiento.
const (
	MovementInbound  MovementKind = "inbound"  // entrada
	MovementOutbound MovementKind = "outbound" // salida
)

// ParseMovementKind normaliza el tipo recibido. Acepta también in/out y entrada/saida.
func ParseMovementKind(s string) (MovementKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inbound", "in", "entrada":
		return MovementInbound, true
	case "outbound", "out", "saida", "salida":
		return MovementOutbound, true
	}
	return "", false
}

// Movement registro inmutable de un cambio de saldo. Nunca se actualiza ni se borra.
type Movement struct {
	ID            int64  // autoincremental, asignado por el store
	TransactionID string // UUID para trazar el movimiento fuera del store
	ProductCode   string
	Kind          MovementKind
	Quantity      int64 // siempre positivo; el signo lo da Kind
	Reason        string
	BalanceBefore int64
	BalanceAfter  int64
	User          string
	CreatedAt     time.Time
}

// SignedQuantity devuelve la cantidad con signo (+ entrada, - salida).
func (m *Movement) SignedQuantity() int64 {
	if m.Kind == MovementOutbound {
		return -m.Quantity
	}
	return m.Quantity
}
