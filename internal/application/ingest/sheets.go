package ingest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/semaforo-stock/internal/domain"
)

const googleSheetsHost = "docs.google.com"

// SourcePolicy decide qué URLs remotas se pueden descargar: las configuradas
// (SHEETS_PRODUCTS_URL) y planillas de Google Sheets servidas por https.
type SourcePolicy struct {
	allowed map[string]struct{}
}

// NewSourcePolicy construye la política; las URLs vacías se ignoran.
func NewSourcePolicy(configured ...string) SourcePolicy {
	p := SourcePolicy{allowed: make(map[string]struct{})}
	for _, raw := range configured {
		if raw = strings.TrimSpace(raw); raw != "" {
			p.allowed[ExportURL(raw, FormatCSV)] = struct{}{}
		}
	}
	return p
}

// Check devuelve domain.ErrInvalidInput si raw no es una fuente permitida.
func (p SourcePolicy) Check(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("url de planilla vacía: %w", domain.ErrInvalidInput)
	}
	if _, ok := p.allowed[ExportURL(raw, FormatCSV)]; ok {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.User != nil ||
		!strings.EqualFold(u.Hostname(), googleSheetsHost) || u.Port() != "" ||
		!strings.HasPrefix(u.Path, "/spreadsheets/d/") {
		return fmt.Errorf("fuente no permitida %q: %w", raw, domain.ErrInvalidInput)
	}
	return nil
}

// ExportURL convierte la URL de edición de una planilla de Google Sheets en su URL de exportación
// (https://docs.google.com/spreadsheets/d/<id>/export?format=csv&gid=<gid>).
// Cualquier otra URL se devuelve sin cambios.
func ExportURL(raw, format string) string {
	if format == "" {
		format = FormatCSV
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !strings.EqualFold(u.Hostname(), googleSheetsHost) {
		return raw
	}
	// /spreadsheets/d/<id>/edit  |  /spreadsheets/d/<id>/export  |  /spreadsheets/d/<id>
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "spreadsheets" || parts[1] != "d" {
		return raw
	}
	if len(parts) >= 4 && parts[3] == "export" {
		return raw
	}

	gid := u.Query().Get("gid")
	if gid == "" {
		// la pestaña suele venir en el fragmento: #gid=123
		frag, _ := url.ParseQuery(u.Fragment)
		gid = frag.Get("gid")
	}

	q := url.Values{}
	q.Set("format", format)
	if gid != "" {
		q.Set("gid", gid)
	}
	out := url.URL{
		Scheme:   "https",
		Host:     u.Host,
		Path:     "/spreadsheets/d/" + parts[2] + "/export",
		RawQuery: q.Encode(),
	}
	return out.String()
}
