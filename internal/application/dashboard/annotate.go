package dashboard

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/inventory"
)

// Annotate adjunta estado e indicador a cada producto (función pura, sin acceso al store).
func Annotate(products []*entity.Product) []dto.ProductStatusResponse {
	out := make([]dto.ProductStatusResponse, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		out = append(out, ToProductStatus(p))
	}
	return out
}

// ToProductStatus convierte un producto en su fila de tablero.
func ToProductStatus(p *entity.Product) dto.ProductStatusResponse {
	status := inventory.Classify(p.CurrentStock, p.MinStock)
	return dto.ProductStatusResponse{
		Code:         p.Code,
		Name:         p.Name,
		Category:     p.Category,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		UnitCost:     p.UnitCost,
		StockValue:   p.StockValue(),
		Status:       string(status),
		Indicator:    Indicator(status),
		UpdatedAt:    p.UpdatedAt,
	}
}

// SortByName ordena por nombre con reglas de collation pt-BR (acentos, mayúsculas),
// desempatando por código para que el orden sea estable entre llamadas.
func SortByName(rows []dto.ProductStatusResponse) {
	// collate.Collator no es seguro para uso concurrente: uno por llamada.
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		if r := c.CompareString(rows[i].Name, rows[j].Name); r != 0 {
			return r < 0
		}
		return rows[i].Code < rows[j].Code
	})
}
