package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

func TestGenerate_ProduceUnPDF(t *testing.T) {
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	u := &entity.Unit{
		UnitID:   "ACM-CAJ-260820-AAAA",
		Label:    "Cajas",
		Company:  "ACME",
		Quantity: 50,
		Level:    entity.LevelRaw,
		Status:   entity.StatusPending,
		Deadline: &deadline,
	}
	payload := entity.TokenPayload{UnitID: u.UnitID, Label: u.Label, Quantity: u.Quantity}

	out, err := NewMarotoLabelGenerator().Generate(u, payload)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerate_SinFechaLimite(t *testing.T) {
	u := &entity.Unit{
		UnitID:   "BOD-TAM-260812-BBBB",
		Label:    "Tambores",
		Company:  "Bodega Sur",
		Quantity: 15,
		Level:    entity.LevelProcessing,
		Status:   entity.StatusInProgress,
	}
	payload := entity.TokenPayload{UnitID: u.UnitID, Label: u.Label, Quantity: u.Quantity}

	out, err := NewMarotoLabelGenerator().Generate(u, payload)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
