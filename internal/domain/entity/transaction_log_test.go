package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedDelta_PorOperacion(t *testing.T) {
	cases := []struct {
		name   string
		op     string
		change int64
		want   int64
	}{
		{"alta suma", OpInitialEntry, 50, 50},
		{"entrada suma", OpEntry, 20, 20},
		{"salida resta", OpExit, 20, -20},
		{"ajuste conserva el signo", OpStockAdjust, -15, -15},
		{"ajuste positivo", OpStockAdjust, 15, 15},
		{"cambio de nivel no aporta", OpLevelChange, 0, 0},
		{"cambio de estado no aporta", OpStatusChange, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := TransactionLogEntry{Operation: tc.op, QuantityChange: tc.change}
			assert.Equal(t, tc.want, e.SignedDelta())
		})
	}
}

func TestValidadoresDeDominio(t *testing.T) {
	assert.True(t, ValidLevel(LevelProcessing))
	assert.False(t, ValidLevel("Cooked"))
	assert.True(t, ValidStatus(StatusInProgress))
	assert.False(t, ValidStatus("Paused"))
	assert.True(t, ValidOperation(OpStockAdjust))
	assert.False(t, ValidOperation("teleport"))
}
