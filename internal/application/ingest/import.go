package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
	"github.com/jhoicas/semaforo-stock/internal/domain/repository"
)

// ImportUseCase carga productos al store a partir de filas ya validadas.
// El stock de un código existente no se toca: sólo el ledger lo modifica.
type ImportUseCase struct {
	txRunner inventory.TxRunner
	fetcher  Fetcher
	sources  SourcePolicy
	log      zerolog.Logger
	now      func() time.Time
}

// NewImportUseCase construye el caso de uso. fetcher puede ser nil si no se importa desde URL;
// en ese caso sources no se consulta.
func NewImportUseCase(txRunner inventory.TxRunner, fetcher Fetcher, sources SourcePolicy, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{txRunner: txRunner, fetcher: fetcher, sources: sources, log: log, now: time.Now}
}

// Import inserta los códigos nuevos y actualiza el catálogo de los existentes, en una sola transacción.
func (uc *ImportUseCase) Import(ctx context.Context, products []entity.Product) (*dto.ImportResultDTO, error) {
	out := &dto.ImportResultDTO{Received: len(products)}
	now := uc.now().UTC()

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.MovementRepository) error {
		for i := range products {
			p := products[i]
			existing, err := productRepo.GetForUpdate(ctx, p.Code)
			if err != nil {
				return fmt.Errorf("leer %s: %w", p.Code, err)
			}
			p.UpdatedAt = now
			if existing == nil {
				p.CreatedAt = now
				if err := productRepo.Create(ctx, &p); err != nil {
					return fmt.Errorf("crear %s: %w", p.Code, err)
				}
				out.Created++
				continue
			}
			if err := productRepo.UpdateCatalog(ctx, &p); err != nil {
				return fmt.Errorf("actualizar %s: %w", p.Code, err)
			}
			out.Updated++
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int("received", out.Received).Msg("importación revertida")
		return nil, domain.NewStoreError("importar productos", err)
	}
	uc.log.Info().Int("received", out.Received).Int("created", out.Created).Int("updated", out.Updated).Msg("importación aplicada")
	return out, nil
}

// ImportReader parsea la fuente en el formato dado e importa las filas válidas.
func (uc *ImportUseCase) ImportReader(ctx context.Context, format string, r io.Reader) (*dto.ImportResultDTO, error) {
	res, err := Parse(format, r)
	if err != nil {
		uc.log.Warn().Err(err).Str("format", format).Msg("fuente rechazada")
		return nil, err
	}
	if res.Dropped > 0 {
		uc.log.Debug().Int("dropped", res.Dropped).Msg("filas sin código o nombre descartadas")
	}
	out, err := uc.Import(ctx, res.Products)
	if err != nil {
		return nil, err
	}
	out.Dropped = res.Dropped
	return out, nil
}

// ImportFile importa un archivo subido; el formato se deduce del nombre.
func (uc *ImportUseCase) ImportFile(ctx context.Context, filename string, r io.Reader) (*dto.ImportResultDTO, error) {
	return uc.ImportReader(ctx, FormatFromFilename(filename), r)
}

// ImportFromURL descarga la planilla (Google Sheets o la URL configurada) y la importa.
func (uc *ImportUseCase) ImportFromURL(ctx context.Context, sheetURL, format string) (*dto.ImportResultDTO, error) {
	if uc.fetcher == nil {
		return nil, fmt.Errorf("importación por URL no configurada: %w", domain.ErrSourceUnavailable)
	}
	if err := uc.sources.Check(sheetURL); err != nil {
		uc.log.Warn().Err(err).Msg("fuente remota rechazada")
		return nil, err
	}
	if format == "" {
		format = FormatCSV
	}
	data, err := uc.fetcher.Fetch(ctx, ExportURL(sheetURL, format))
	if err != nil {
		return nil, err
	}
	return uc.ImportReader(ctx, format, bytes.NewReader(data))
}
