// Package sheets descarga planillas publicadas (Google Sheets u otra URL CSV/XLSX).
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/semaforo-stock/internal/application/ingest"
	"github.com/jhoicas/semaforo-stock/internal/domain"
)

var _ ingest.Fetcher = (*HTTPFetcher)(nil)

// MaxBody tamaño máximo aceptado de una planilla exportada; una respuesta mayor se rechaza.
const MaxBody = 16 << 20

// HTTPFetcher implementa ingest.Fetcher con net/http.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher construye el adaptador. timeout <= 0 usa 15 s.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{httpClient: &http.Client{Timeout: timeout}}
}

// Fetch descarga url. Red caída, timeout, HTTP != 200 o un cuerpo mayor a MaxBody
// devuelven domain.ErrSourceUnavailable.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: url inválida: %w", domain.ErrInvalidInput)
	}
	req.Header.Set("Accept", "text/csv, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, */*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("sheets: timeout o cancelación (%v): %w", ctx.Err(), domain.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("sheets: %v: %w", err, domain.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets: HTTP %d: %w", resp.StatusCode, domain.ErrSourceUnavailable)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBody+1))
	if err != nil {
		return nil, fmt.Errorf("sheets: leer respuesta: %v: %w", err, domain.ErrSourceUnavailable)
	}
	if len(body) > MaxBody {
		return nil, fmt.Errorf("sheets: la planilla supera %d bytes: %w", MaxBody, domain.ErrSourceUnavailable)
	}
	return body, nil
}
