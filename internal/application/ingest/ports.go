package ingest

import (
	"context"
	"time"
)

// Fetcher descarga el contenido crudo de una planilla publicada.
// Las fallas de red o HTTP != 200 deben envolver domain.ErrSourceUnavailable.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SnapshotCache guarda el contenido descargado por URL durante un TTL.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
