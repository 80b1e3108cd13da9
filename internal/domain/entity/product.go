package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// CurrentStock sólo cambia vía movimientos (ledger); se fija al crear por seed o importación.
type Product struct {
	Code         string // código único (PK)
	Name         string
	Category     string
	CurrentStock int64
	MinStock     int64 // punto de reposición
	MaxStock     int64 // capacidad de referencia, informativo
	UnitCost     decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockValue devuelve CurrentStock × UnitCost.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(p.CurrentStock))
}
