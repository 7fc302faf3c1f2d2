package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción SQLite.
type TxRunner struct {
	store *Store
}

var _ ledger.TxRunner = (*TxRunner)(nil)

// NewTxRunner crea el ejecutor de transacciones sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run abre una transacción, construye los repositorios sobre ella y ejecuta
// fn. Si fn devuelve error se revierte todo; si no, se confirma.
func (r *TxRunner) Run(ctx context.Context, fn func(units repository.UnitRepository, logs repository.TransactionLogRepository) error) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("abrir transacción: %w", err)
	}
	defer tx.Rollback()

	units := NewUnitRepository(tx)
	logs := NewTransactionLogRepository(tx)

	if err := fn(units, logs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}
