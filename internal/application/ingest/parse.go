package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/semaforo-stock/internal/domain"
)

// Formatos de fuente soportados.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ParseCSV lee una planilla CSV con encabezado. Acepta separador ',' o ';' (Excel pt-BR/es).
func ParseCSV(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if sep := detectSeparator(data); sep != ',' {
		reader.Comma = sep
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	return ParseRecords(records)
}

// ParseXLSX lee la primera hoja de un libro XLSX.
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX sin hojas: %w", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return ParseRecords(rows)
}

// Parse elige el parser según el formato ("csv" o "xlsx").
func Parse(format string, r io.Reader) (*Result, error) {
	switch format {
	case FormatXLSX:
		return ParseXLSX(r)
	case FormatCSV, "":
		return ParseCSV(r)
	}
	return nil, fmt.Errorf("formato %q: %w", format, domain.ErrInvalidInput)
}

// FormatFromFilename deduce el formato por la extensión; por defecto CSV.
func FormatFromFilename(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// detectSeparator mira sólo la primera línea: ';' si aparece más que ','.
func detectSeparator(data []byte) rune {
	line := string(data)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
