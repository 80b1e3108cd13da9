package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatusResponse producto con la clasificación de semáforo adjunta.
type ProductStatusResponse struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CurrentStock int64           `json:"current_stock"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     int64           `json:"max_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	StockValue   decimal.Decimal `json:"stock_value"` // current_stock * unit_cost
	Status       string          `json:"status"`      // CRITICAL | WARNING | OK
	Indicator    string          `json:"indicator"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}
