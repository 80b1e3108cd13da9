package dashboard

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain/inventory"
)

// UncategorizedLabel etiqueta para productos sin categoría.
const UncategorizedLabel = "Sin categoría"

var hundred = decimal.NewFromInt(100)

// Summarize construye el resumen del tablero a partir de filas ya anotadas (función pura).
//
//   - conteo y porcentaje por nivel (siempre los tres, en orden de severidad)
//   - alertas: productos CRITICAL en el orden recibido
//   - agregados por categoría; "Eletrônicos" y "eletrônicos" cuentan como la misma
func Summarize(rows []dto.ProductStatusResponse, now time.Time) dto.DashboardSummaryDTO {
	counts := make(map[string]int, 3)
	totalValue := decimal.Zero
	alerts := make([]dto.AlertDTO, 0)

	fold := cases.Fold()
	catIndex := make(map[string]int)
	categories := make([]dto.CategoryDTO, 0)

	for _, r := range rows {
		counts[r.Status]++
		totalValue = totalValue.Add(r.StockValue)

		if r.Status == string(inventory.StatusCritical) {
			alerts = append(alerts, dto.AlertDTO{
				Code:         r.Code,
				Name:         r.Name,
				CurrentStock: r.CurrentStock,
				MinStock:     r.MinStock,
			})
		}

		label := strings.TrimSpace(r.Category)
		if label == "" {
			label = UncategorizedLabel
		}
		key := fold.String(label)
		i, ok := catIndex[key]
		if !ok {
			i = len(categories)
			catIndex[key] = i
			categories = append(categories, dto.CategoryDTO{Category: label, TotalValue: decimal.Zero})
		}
		categories[i].TotalStock += r.CurrentStock
		categories[i].ProductCount++
		categories[i].TotalValue = categories[i].TotalValue.Add(r.StockValue)
	}

	byStatus := make([]dto.StatusCountDTO, 0, 3)
	for _, s := range inventory.Statuses() {
		n := counts[string(s)]
		pct := decimal.Zero
		if len(rows) > 0 {
			pct = decimal.NewFromInt(int64(n)).Mul(hundred).Div(decimal.NewFromInt(int64(len(rows)))).Round(2)
		}
		byStatus = append(byStatus, dto.StatusCountDTO{
			Status:    string(s),
			Indicator: Indicator(s),
			Count:     n,
			Percent:   pct,
		})
	}

	return dto.DashboardSummaryDTO{
		TotalProducts: len(rows),
		TotalValue:    totalValue.Round(2),
		ByStatus:      byStatus,
		Categories:    categories,
		Alerts:        alerts,
		GeneratedAt:   now,
	}
}
