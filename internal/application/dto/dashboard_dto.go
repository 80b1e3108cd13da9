package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts int              `json:"total_products"`
	TotalValue    decimal.Decimal  `json:"total_value"` // Σ current_stock * unit_cost
	ByStatus      []StatusCountDTO `json:"by_status"`   // siempre los tres niveles, en orden de severidad
	Categories    []CategoryDTO    `json:"categories"`
	Alerts        []AlertDTO       `json:"alerts"` // productos en CRITICAL
	GeneratedAt   time.Time        `json:"generated_at"`
}

// StatusCountDTO cantidad de productos por nivel del semáforo.
type StatusCountDTO struct {
	Status    string          `json:"status"`
	Indicator string          `json:"indicator"`
	Count     int             `json:"count"`
	Percent   decimal.Decimal `json:"percent"` // 0–100, dos decimales
}

// CategoryDTO agregado por categoría.
type CategoryDTO struct {
	Category     string          `json:"category"`
	TotalStock   int64           `json:"total_stock"`
	ProductCount int             `json:"product_count"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// AlertDTO producto en estado crítico.
type AlertDTO struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	CurrentStock int64  `json:"current_stock"`
	MinStock     int64  `json:"min_stock"`
}
