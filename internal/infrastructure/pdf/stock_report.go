// Package pdf genera el reporte de semáforos de stock en PDF (Maroto v2).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación  │  QR al tablero      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total productos / valor / conteo por estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Nombre | Categoría | Stock | Mín | Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍAS: stock y valor por categoría                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/semaforo-stock/internal/application/dashboard"
	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 192, Green: 0, Blue: 0}
	colorAmber   = &props.Color{Red: 204, Green: 140, Blue: 0}
	colorGreen   = &props.Color{Red: 0, Green: 128, Blue: 0}
)

var _ dashboard.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa dashboard.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title        string
	dashboardURL string
}

// NewMarotoReportGenerator construye el generador. Si dashboardURL no está vacío se imprime un QR hacia él.
func NewMarotoReportGenerator(title, dashboardURL string) *MarotoReportGenerator {
	if title == "" {
		title = "Semáforo de stock"
	}
	return &MarotoReportGenerator{title: title, dashboardURL: dashboardURL}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(
	_ context.Context,
	summary *dto.DashboardSummaryDTO,
	rows []dto.ProductStatusResponse,
) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rows)...)

	if len(summary.Categories) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(categoryRows(summary.Categories)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReportGenerator) headerRow(s *dto.DashboardSummaryDTO) core.Row {
	left := col.New(9).Add(
		text.New(strings.ToUpper(g.title), props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New("Generado: "+s.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
			Size: 8, Top: 9, Color: colorGray,
		}),
	)
	if g.dashboardURL == "" {
		return row.New(18).Add(left, col.New(3))
	}
	return row.New(18).Add(left, col.New(3).Add(code.NewQr(g.dashboardURL, props.Rect{
		Percent: 95,
		Center:  true,
	})))
}

// summaryRow totales y conteo por estado.
func summaryRow(s *dto.DashboardSummaryDTO) core.Row {
	cols := []core.Col{
		col.New(3).Add(
			text.New("Productos", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d", s.TotalProducts), props.Text{Style: fontstyle.Bold, Size: 12, Top: 6}),
		),
		col.New(3).Add(
			text.New("Valor en stock", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("$"+formatMoney(s.TotalValue), props.Text{Style: fontstyle.Bold, Size: 12, Top: 6}),
		),
	}
	for _, sc := range s.ByStatus {
		cols = append(cols, col.New(2).Add(
			text.New(sc.Status, props.Text{Style: fontstyle.Bold, Size: 8, Color: statusColor(sc.Status), Top: 1}),
			text.New(fmt.Sprintf("%d (%s%%)", sc.Count, sc.Percent.StringFixed(2)), props.Text{Size: 10, Top: 6}),
		))
	}
	return row.New(14).Add(cols...)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 1, align.Left),
		h("Nombre", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Valor", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// tableRows una fila por producto, con el estado coloreado.
func tableRows(rows []dto.ProductStatusResponse) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(6).Add(
			col.New(1).Add(text.New(r.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(r.Category, dashboard.UncategorizedLabel), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.CurrentStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(r.StockValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(r.Status, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: statusColor(r.Status),
			})),
		))
	}
	return out
}

func categoryRows(cats []dto.CategoryDTO) []core.Row {
	out := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("POR CATEGORÍA", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, c := range cats {
		out = append(out, row.New(5).Add(
			col.New(6).Add(text.New(c.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d prod.", c.ProductCount), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d u.", c.TotalStock), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(c.TotalValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func statusColor(status string) *props.Color {
	switch inventory.Status(status) {
	case inventory.StatusCritical:
		return colorRed
	case inventory.StatusWarning:
		return colorAmber
	default:
		return colorGreen
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con puntos de miles y coma decimal.
// Ej: 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
