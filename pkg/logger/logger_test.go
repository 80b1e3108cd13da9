package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "production", Level: "debug", Service: "semaforo-stock"}, &buf)

	log := l.Component("ledger")
	log.Info().Str("code", "P001").Msg("movimiento registrado")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "ledger", ev["component"])
	assert.Equal(t, "semaforo-stock", ev["service"])
	assert.Equal(t, "P001", ev["code"])
	assert.Equal(t, "info", ev["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
}
