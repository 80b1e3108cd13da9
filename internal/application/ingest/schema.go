// Package ingest convierte fuentes tabulares débilmente tipadas (CSV, XLSX, Google Sheets)
// en productos tipados, con validación de esquema en el borde de entrada.
package ingest

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
)

// Columnas obligatorias de la fuente de productos.
const (
	ColCode         = "code"
	ColName         = "name"
	ColCategory     = "category"
	ColCurrentStock = "current_stock"
	ColMinStock     = "min_stock"
	ColMaxStock     = "max_stock"
	ColUnitCost     = "unit_cost"
)

// RequiredColumns en el orden en que se reportan cuando faltan.
var RequiredColumns = []string{ColCode, ColName, ColCategory, ColCurrentStock, ColMinStock, ColMaxStock, ColUnitCost}

// columnAliases encabezados aceptados además del nombre canónico (planillas en portugués).
var columnAliases = map[string]string{
	"codigo":         ColCode,
	"código":         ColCode,
	"nome":           ColName,
	"categoria":      ColCategory,
	"estoque_atual":  ColCurrentStock,
	"estoque_min":    ColMinStock,
	"estoque_max":    ColMaxStock,
	"custo_unitario": ColUnitCost,
}

// Result filas válidas y cantidad de filas descartadas por falta de code/name.
type Result struct {
	Products []entity.Product
	Dropped  int
}

// headerIndex resuelve la posición de cada columna obligatoria o devuelve *domain.SchemaError.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(RequiredColumns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canon, ok := columnAliases[name]; ok {
			name = canon
		}
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}
	return idx, nil
}

// ParseRecords convierte registros (encabezado + filas) en productos.
//
// Reglas de limpieza:
//   - faltan columnas → *domain.SchemaError, sin filas
//   - code o name vacíos → fila descartada
//   - valores no numéricos → 0; negativos → 0; stock con decimales se trunca
//   - códigos repetidos: gana la última fila, en la posición de la primera
func ParseRecords(records [][]string) (*Result, error) {
	if len(records) == 0 {
		return nil, &domain.SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}
	idx, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	res := &Result{Products: make([]entity.Product, 0, len(records)-1)}
	pos := make(map[string]int)
	for _, rec := range records[1:] {
		cell := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		code, name := cell(ColCode), cell(ColName)
		if code == "" || name == "" {
			res.Dropped++
			continue
		}
		p := entity.Product{
			Code:         code,
			Name:         name,
			Category:     cell(ColCategory),
			CurrentStock: coerceInt(cell(ColCurrentStock)),
			MinStock:     coerceInt(cell(ColMinStock)),
			MaxStock:     coerceInt(cell(ColMaxStock)),
			UnitCost:     coerceDecimal(cell(ColUnitCost)),
		}
		if i, dup := pos[code]; dup {
			res.Products[i] = p
			continue
		}
		pos[code] = len(res.Products)
		res.Products = append(res.Products, p)
	}
	return res, nil
}

// coerceDecimal interpreta "25.50", "25,50" o "1.234,50"; cualquier otra cosa vale 0.
func coerceDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// coerceInt trunca a entero; lo que no entra en int64 vale 0, igual que un texto inválido.
func coerceInt(s string) int64 {
	d := coerceDecimal(s).Truncate(0)
	if d.GreaterThan(maxInt64) {
		return 0
	}
	return d.IntPart()
}
