// Package dashboard contiene los casos de uso de lectura del tablero de semáforos:
// listado anotado, resumen por estado/categoría y reporte PDF.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

// ReportGenerator genera la representación PDF del tablero.
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, summary *dto.DashboardSummaryDTO, rows []dto.ProductStatusResponse) ([]byte, error)
}

// Filter filtros del listado. Campos vacíos no filtran.
type Filter struct {
	Category string
	Status   inventory.Status
}

// DashboardUseCase lee productos del store y los clasifica en cada llamada.
// El estado nunca se persiste: dos lecturas sin movimientos intermedios dan el mismo resultado.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	report      ReportGenerator
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso. report puede ser nil si no se expone el PDF.
func NewDashboardUseCase(productRepo repository.ProductRepository, report ReportGenerator) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, report: report, now: time.Now}
}

// ListProducts devuelve los productos con estado e indicador, ordenados por nombre.
func (uc *DashboardUseCase) ListProducts(ctx context.Context, f Filter) ([]dto.ProductStatusResponse, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{Category: strings.TrimSpace(f.Category)})
	if err != nil {
		return nil, domain.NewStoreError("listar productos", err)
	}
	rows := Annotate(products)
	if f.Status != "" {
		filtered := rows[:0]
		for _, r := range rows {
			if r.Status == string(f.Status) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	SortByName(rows)
	return rows, nil
}

// GetProduct devuelve un producto anotado; ErrNotFound si el código no existe.
func (uc *DashboardUseCase) GetProduct(ctx context.Context, code string) (*dto.ProductStatusResponse, error) {
	p, err := uc.productRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, domain.NewStoreError("leer producto", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	row := ToProductStatus(p)
	return &row, nil
}

// Summary construye el resumen del tablero completo (sin filtros).
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	rows, err := uc.ListProducts(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	s := Summarize(rows, uc.now().UTC())
	return &s, nil
}

// Report genera el PDF con el resumen y la tabla de semáforos.
func (uc *DashboardUseCase) Report(ctx context.Context) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("dashboard: generador de reportes no configurado")
	}
	rows, err := uc.ListProducts(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	s := Summarize(rows, uc.now().UTC())
	return uc.report.GenerateStockReport(ctx, &s, rows)
}
