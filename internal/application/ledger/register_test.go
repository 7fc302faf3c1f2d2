package ledger_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
	"github.com/jhoicas/Pallets-api/internal/testutil"
)

func TestRegister_CreaEstibaConTokenYAlta(t *testing.T) {
	store := testutil.NewMemStore()
	uc := ledger.NewRegisterUnitUseCase(store, &fakeCodec{})
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	unit, token, err := uc.Register(context.Background(), ledger.RegisterInputDTO{
		Label:           "Cajas Export",
		Company:         "Acme Corp",
		Level:           entity.LevelProcessing,
		Deadline:        &deadline,
		InitialQuantity: 50,
	})

	require.NoError(t, err)
	require.NotNil(t, unit)
	assert.Regexp(t, `^ACM-CAJ-\d{6}-[A-Z2-9]{4}$`, unit.UnitID)
	assert.EqualValues(t, 50, unit.Quantity)
	assert.Equal(t, entity.LevelProcessing, unit.Level)
	assert.Equal(t, entity.StatusPending, unit.Status)
	require.NotNil(t, unit.Deadline)
	assert.True(t, unit.Deadline.Equal(deadline))

	// El token declara el lote y la cantidad inicial.
	var payload entity.TokenPayload
	require.NoError(t, json.Unmarshal(token, &payload))
	assert.Equal(t, unit.UnitID, payload.UnitID)
	assert.Equal(t, "Cajas Export", payload.Label)
	assert.EqualValues(t, 50, payload.Quantity)

	// El alta queda en el libro con previa cero.
	logs, err := store.ListByUnit(unit.UnitID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.OpInitialEntry, logs[0].Operation)
	assert.EqualValues(t, 0, logs[0].PreviousQuantity)
	assert.EqualValues(t, 50, logs[0].NewQuantity)
}

func TestRegister_NivelVacioArrancaEnRaw(t *testing.T) {
	store := testutil.NewMemStore()
	uc := ledger.NewRegisterUnitUseCase(store, &fakeCodec{})

	unit, _, err := uc.Register(context.Background(), ledger.RegisterInputDTO{
		Label:   "Cajas",
		Company: "Acme",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.LevelRaw, unit.Level)
	assert.Zero(t, unit.Quantity, "la cantidad inicial puede ser cero")
}

func TestRegister_ValidaEntrada(t *testing.T) {
	store := testutil.NewMemStore()
	uc := ledger.NewRegisterUnitUseCase(store, &fakeCodec{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input ledger.RegisterInputDTO
	}{
		{"sin etiqueta", ledger.RegisterInputDTO{Company: "Acme", InitialQuantity: 10}},
		{"sin empresa", ledger.RegisterInputDTO{Label: "Cajas", InitialQuantity: 10}},
		{"cantidad negativa", ledger.RegisterInputDTO{Label: "Cajas", Company: "Acme", InitialQuantity: -1}},
		{"nivel desconocido", ledger.RegisterInputDTO{Label: "Cajas", Company: "Acme", Level: "Cooked"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Register(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	units, _ := store.List(repository.UnitFilter{})
	assert.Empty(t, units)
}

func TestRegister_FallaDelCodecNoPersisteNada(t *testing.T) {
	store := testutil.NewMemStore()
	uc := ledger.NewRegisterUnitUseCase(store, &fakeCodec{failEncode: true})

	_, _, err := uc.Register(context.Background(), ledger.RegisterInputDTO{
		Label:           "Cajas",
		Company:         "Acme",
		InitialQuantity: 10,
	})

	require.Error(t, err)
	units, _ := store.List(repository.UnitFilter{})
	assert.Empty(t, units, "el alta debe abortar antes de escribir")
	logs, _ := store.ListRecent(10)
	assert.Empty(t, logs)
}
