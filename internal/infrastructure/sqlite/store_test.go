package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUnit(t *testing.T, store *Store, u entity.Unit) {
	t.Helper()
	require.NoError(t, NewUnitRepository(store.DB()).Insert(&u))
}

func baseUnit(unitID string, quantity int64) entity.Unit {
	now := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	return entity.Unit{
		UnitID:      unitID,
		Label:       "Cajas",
		Company:     "ACME",
		Quantity:    quantity,
		Level:       entity.LevelRaw,
		Status:      entity.StatusPending,
		LastUpdated: now,
		CreatedAt:   now,
	}
}

// ── Store ───────────────────────────────────────────────────────────

func TestOpen_CreaElEsquema(t *testing.T) {
	store := newStore(t)

	var version int
	require.NoError(t, store.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)

	var count int
	err := store.DB().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('units', 'transaction_log')",
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// ── UnitRepo ────────────────────────────────────────────────────────

func TestUnitRepo_CicloDeVida(t *testing.T) {
	store := newStore(t)
	repo := NewUnitRepository(store.DB())

	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	u := baseUnit("ACM-CAJ-260820-AAAA", 50)
	u.Deadline = &deadline

	require.NoError(t, repo.Insert(&u))

	// Insertar dos veces el mismo identificador choca con la clave primaria.
	dup := baseUnit("ACM-CAJ-260820-AAAA", 10)
	assert.ErrorIs(t, repo.Insert(&dup), domain.ErrDuplicate)

	got, err := repo.GetByID("ACM-CAJ-260820-AAAA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cajas", got.Label)
	assert.Equal(t, int64(50), got.Quantity)
	require.NotNil(t, got.Deadline)
	assert.WithinDuration(t, deadline, *got.Deadline, time.Second)

	got.Quantity = 70
	got.Status = entity.StatusInProgress
	require.NoError(t, repo.Update(got))

	again, err := repo.GetByIDForUpdate("ACM-CAJ-260820-AAAA")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, int64(70), again.Quantity)
	assert.Equal(t, entity.StatusInProgress, again.Status)
}

func TestUnitRepo_AusenteDevuelveNil(t *testing.T) {
	store := newStore(t)
	repo := NewUnitRepository(store.DB())

	got, err := repo.GetByID("NOE-XIS-260820-ZZZZ")
	require.NoError(t, err)
	assert.Nil(t, got)

	missing := baseUnit("NOE-XIS-260820-ZZZZ", 1)
	assert.ErrorIs(t, repo.Update(&missing), domain.ErrNotFound)
}

func TestUnitRepo_CantidadNegativaRechazada(t *testing.T) {
	store := newStore(t)
	repo := NewUnitRepository(store.DB())

	u := baseUnit("ACM-NEG-260820-AAAA", -5)
	assert.ErrorIs(t, repo.Insert(&u), domain.ErrOutOfRange)
}

func TestUnitRepo_FiltrosYOrden(t *testing.T) {
	store := newStore(t)
	repo := NewUnitRepository(store.DB())

	d1 := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	a := baseUnit("AAA-UNO-260820-AAAA", 70)
	a.Status = entity.StatusInProgress
	a.Deadline = &d2
	b := baseUnit("BBB-DOS-260820-BBBB", 15)
	c := baseUnit("CCC-TRE-260820-CCCC", 5)
	c.Level = entity.LevelProcessing
	c.Deadline = &d1
	for _, u := range []entity.Unit{a, b, c} {
		seedUnit(t, store, u)
	}

	all, err := repo.List(repository.UnitFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "AAA-UNO-260820-AAAA", all[0].UnitID)

	// Sin fecha límite va al final.
	byDeadline, err := repo.List(repository.UnitFilter{OrderBy: "deadline"})
	require.NoError(t, err)
	require.Len(t, byDeadline, 3)
	assert.Equal(t, "CCC-TRE-260820-CCCC", byDeadline[0].UnitID)
	assert.Equal(t, "AAA-UNO-260820-AAAA", byDeadline[1].UnitID)
	assert.Equal(t, "BBB-DOS-260820-BBBB", byDeadline[2].UnitID)

	below := int64(20)
	critical, err := repo.List(repository.UnitFilter{QuantityBelow: &below, OrderBy: "quantity"})
	require.NoError(t, err)
	require.Len(t, critical, 2)
	assert.Equal(t, "CCC-TRE-260820-CCCC", critical[0].UnitID)
	assert.Equal(t, "BBB-DOS-260820-BBBB", critical[1].UnitID)

	due := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	dueSoon, err := repo.List(repository.UnitFilter{DeadlineBefore: &due})
	require.NoError(t, err)
	require.Len(t, dueSoon, 1)
	assert.Equal(t, "CCC-TRE-260820-CCCC", dueSoon[0].UnitID)

	inProgress, err := repo.List(repository.UnitFilter{Status: entity.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, "AAA-UNO-260820-AAAA", inProgress[0].UnitID)

	paged, err := repo.List(repository.UnitFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, "BBB-DOS-260820-BBBB", paged[0].UnitID)
}

// ── TransactionLogRepo ──────────────────────────────────────────────

func logEntry(unitID, op string, change, prev, next int64) entity.TransactionLogEntry {
	return entity.TransactionLogEntry{
		TransactionID:    "tx-" + op,
		UnitID:           unitID,
		Operation:        op,
		QuantityChange:   change,
		PreviousQuantity: prev,
		NewQuantity:      next,
		Timestamp:        time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
	}
}

func TestTransactionLogRepo_AnexadoYOrden(t *testing.T) {
	store := newStore(t)
	seedUnit(t, store, baseUnit("ACM-CAJ-260820-AAAA", 70))
	repo := NewTransactionLogRepository(store.DB())

	first := logEntry("ACM-CAJ-260820-AAAA", entity.OpInitialEntry, 50, 0, 50)
	second := logEntry("ACM-CAJ-260820-AAAA", entity.OpEntry, 20, 50, 70)
	require.NoError(t, repo.Append(&first))
	require.NoError(t, repo.Append(&second))

	// El identificador lo asigna la base y crece de forma estricta.
	assert.Greater(t, first.LogID, int64(0))
	assert.Greater(t, second.LogID, first.LogID)

	history, err := repo.ListByUnit("ACM-CAJ-260820-AAAA")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.OpInitialEntry, history[0].Operation)
	assert.Equal(t, entity.OpEntry, history[1].Operation)

	recent, err := repo.ListRecent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, second.LogID, recent[0].LogID)
}

func TestTransactionLog_EsInmutable(t *testing.T) {
	store := newStore(t)
	seedUnit(t, store, baseUnit("ACM-CAJ-260820-AAAA", 50))
	repo := NewTransactionLogRepository(store.DB())

	e := logEntry("ACM-CAJ-260820-AAAA", entity.OpInitialEntry, 50, 0, 50)
	require.NoError(t, repo.Append(&e))

	_, err := store.DB().Exec("UPDATE transaction_log SET new_quantity = 999 WHERE log_id = ?", e.LogID)
	assert.Error(t, err)

	_, err = store.DB().Exec("DELETE FROM transaction_log WHERE log_id = ?", e.LogID)
	assert.Error(t, err)

	history, err := repo.ListByUnit("ACM-CAJ-260820-AAAA")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(50), history[0].NewQuantity)
}

// ── TxRunner ────────────────────────────────────────────────────────

func TestTxRunner_ConfirmaYRevierte(t *testing.T) {
	store := newStore(t)
	runner := NewTxRunner(store)
	ctx := context.Background()

	err := runner.Run(ctx, func(units repository.UnitRepository, logs repository.TransactionLogRepository) error {
		u := baseUnit("ACM-CAJ-260820-AAAA", 50)
		if err := units.Insert(&u); err != nil {
			return err
		}
		e := logEntry("ACM-CAJ-260820-AAAA", entity.OpInitialEntry, 50, 0, 50)
		return logs.Append(&e)
	})
	require.NoError(t, err)

	fails := errors.New("algo salió mal")
	err = runner.Run(ctx, func(units repository.UnitRepository, logs repository.TransactionLogRepository) error {
		u := baseUnit("BBB-DOS-260820-BBBB", 10)
		if err := units.Insert(&u); err != nil {
			return err
		}
		return fails
	})
	assert.ErrorIs(t, err, fails)

	repo := NewUnitRepository(store.DB())
	committed, err := repo.GetByID("ACM-CAJ-260820-AAAA")
	require.NoError(t, err)
	assert.NotNil(t, committed)

	reverted, err := repo.GetByID("BBB-DOS-260820-BBBB")
	require.NoError(t, err)
	assert.Nil(t, reverted)
}
