// seed carga el catálogo de demostración o importa una planilla local al store configurado.
//
// Uso:
//
//	go run ./cmd/seed                          # catálogo demo si el store está vacío
//	go run ./cmd/seed -file productos.csv      # importa CSV/XLSX
//	go run ./cmd/seed -file viejo.csv -charset latin1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/semaforo-stock/internal/application/ingest"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/storage"
	"github.com/jhoicas/semaforo-stock/pkg/config"
	"github.com/jhoicas/semaforo-stock/pkg/logger"
)

func main() {
	file := flag.String("file", "", "planilla .csv o .xlsx a importar (vacío = catálogo demo)")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8 | latin1 | windows-1252")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	st, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.Close()

	importUC := ingest.NewImportUseCase(st.Tx, nil, ingest.SourcePolicy{}, log.Component("ingest"))

	if *file == "" {
		res, seeded, err := ingest.SeedDemo(ctx, st.Products, importUC)
		if err != nil {
			log.Fatal().Err(err).Msg("carga de datos de demostración")
		}
		if !seeded {
			log.Info().Msg("el store ya tiene productos, no se cargó el catálogo demo")
			return
		}
		log.Info().Int("created", res.Created).Msg("catálogo de demostración cargado")
		return
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir planilla")
	}
	defer f.Close()

	r, err := decoder(*charset, f)
	if err != nil {
		log.Fatal().Err(err).Msg("charset")
	}
	res, err := importUC.ImportFile(ctx, filepath.Base(*file), r)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("importar planilla")
	}
	log.Info().
		Int("received", res.Received).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Msg("planilla importada")
}

// decoder convierte exportaciones antiguas (Excel en Windows) a UTF-8.
func decoder(charset string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset %q no soportado", charset)
}
