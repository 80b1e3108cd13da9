package ingest

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

// DemoProducts catálogo de demostración: cubre los tres estados del semáforo.
func DemoProducts() []entity.Product {
	p := func(code, name, cat string, cur, min, max int64, cost string) entity.Product {
		return entity.Product{
			Code: code, Name: name, Category: cat,
			CurrentStock: cur, MinStock: min, MaxStock: max,
			UnitCost: decimal.RequireFromString(cost),
		}
	}
	return []entity.Product{
		p("P001", "Produto A", "Eletrônicos", 150, 50, 300, "25.50"),
		p("P002", "Produto B", "Eletrônicos", 30, 40, 200, "15.75"),
		p("P003", "Produto C", "Roupas", 80, 60, 250, "32.00"),
		p("P004", "Produto D", "Roupas", 200, 100, 400, "18.25"),
		p("P005", "Produto E", "Casa", 45, 50, 180, "42.80"),
		p("P006", "Produto F", "Casa", 120, 30, 200, "28.90"),
		p("P007", "Produto G", "Livros", 75, 25, 150, "12.50"),
		p("P008", "Produto H", "Livros", 15, 20, 100, "35.00"),
	}
}

// SeedDemo carga el catálogo de demostración sólo si el store está vacío.
// Devuelve seeded=false cuando ya había productos.
func SeedDemo(ctx context.Context, productRepo repository.ProductRepository, uc *ImportUseCase) (*dto.ImportResultDTO, bool, error) {
	n, err := productRepo.Count(ctx)
	if err != nil {
		return nil, false, domain.NewStoreError("contar productos", err)
	}
	if n > 0 {
		return nil, false, nil
	}
	res, err := uc.Import(ctx, DemoProducts())
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}
