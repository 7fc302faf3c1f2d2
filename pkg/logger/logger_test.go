package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_EmiteJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "production", Level: "info"}, &buf)

	l.Info().Str("estiba", "ACME-BOX-001").Msg("unidad registrada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "ACME-BOX-001", line["estiba"])
	assert.Equal(t, "unidad registrada", line["message"])
	assert.Contains(t, line, "time")
}

func TestNivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "production", Level: "warn"}, &buf)

	l.Info().Msg("no debería salir")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}

func TestParseLevel_DesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "gritando"}, &buf)

	assert.Equal(t, "info", l.Zerolog().GetLevel().String())
}
