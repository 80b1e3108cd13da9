package ingest

import (
	"bytes"
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/semaforo-stock/internal/application/dashboard"
	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain/entity"
)

const cacheKeyPrefix = "sheets:"

// PreviewUseCase arma el tablero directamente desde una planilla remota, sin persistir.
// El contenido descargado se cachea por URL de exportación.
type PreviewUseCase struct {
	fetcher Fetcher
	cache   SnapshotCache
	ttl     time.Duration
	sources SourcePolicy
	log     zerolog.Logger
	now     func() time.Time
}

// NewPreviewUseCase construye el caso de uso. cache puede ser nil (sin caché).
// Sólo se descargan las URLs que admite sources.
func NewPreviewUseCase(fetcher Fetcher, cache SnapshotCache, ttl time.Duration, sources SourcePolicy, log zerolog.Logger) *PreviewUseCase {
	return &PreviewUseCase{fetcher: fetcher, cache: cache, ttl: ttl, sources: sources, log: log, now: time.Now}
}

// Preview descarga (o lee de caché) la planilla y devuelve filas anotadas y resumen.
func (uc *PreviewUseCase) Preview(ctx context.Context, sheetURL string) (*dto.SheetPreviewDTO, error) {
	products, cached, err := uc.load(ctx, sheetURL)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*entity.Product, len(products))
	for i := range products {
		ptrs[i] = &products[i]
	}
	rows := dashboard.Annotate(ptrs)
	dashboard.SortByName(rows)
	return &dto.SheetPreviewDTO{
		Source:   ExportURL(sheetURL, FormatCSV),
		Cached:   cached,
		Products: rows,
		Summary:  dashboard.Summarize(rows, uc.now().UTC()),
	}, nil
}

// Invalidate descarta la copia en caché de la planilla.
func (uc *PreviewUseCase) Invalidate(ctx context.Context, sheetURL string) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Delete(ctx, cacheKey(sheetURL))
}

func (uc *PreviewUseCase) load(ctx context.Context, sheetURL string) ([]entity.Product, bool, error) {
	if err := uc.sources.Check(sheetURL); err != nil {
		return nil, false, err
	}
	key := cacheKey(sheetURL)

	if uc.cache != nil {
		data, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida, se descarga la planilla")
		} else if ok {
			res, perr := ParseCSV(bytes.NewReader(data))
			if perr == nil {
				return res.Products, true, nil
			}
			_ = uc.cache.Delete(ctx, key)
		}
	}

	src := ExportURL(sheetURL, FormatCSV)
	data, err := uc.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, false, err
	}
	res, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		uc.log.Warn().Err(err).Str("source", src).Msg("planilla rechazada")
		return nil, false, err
	}
	if res.Dropped > 0 {
		uc.log.Debug().Str("source", src).Int("dropped", res.Dropped).Msg("filas sin código o nombre descartadas")
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, data, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar la planilla en caché")
		}
	}
	return res.Products, false, nil
}

func cacheKey(sheetURL string) string {
	return cacheKeyPrefix + ExportURL(sheetURL, FormatCSV)
}
