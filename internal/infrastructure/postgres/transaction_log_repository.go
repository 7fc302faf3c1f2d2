package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

var _ repository.TransactionLogRepository = (*TransactionLogRepo)(nil)

const logColumns = "log_id, transaction_id, unit_id, operation, quantity_change, previous_quantity, new_quantity, timestamp"

// TransactionLogRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el esquema no permite UPDATE ni
// DELETE sobre transaction_log.
type TransactionLogRepo struct {
	q Querier
}

// NewTransactionLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionLogRepository(q Querier) *TransactionLogRepo {
	return &TransactionLogRepo{q: q}
}

// Append inserta la fila y recoge el log_id asignado por la secuencia.
func (r *TransactionLogRepo) Append(e *entity.TransactionLogEntry) error {
	query := `
		INSERT INTO transaction_log (transaction_id, unit_id, operation, quantity_change, previous_quantity, new_quantity, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING log_id`
	err := r.q.QueryRow(context.Background(), query,
		e.TransactionID, e.UnitID, e.Operation, e.QuantityChange,
		e.PreviousQuantity, e.NewQuantity, e.Timestamp,
	).Scan(&e.LogID)
	if err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}

// ListByUnit devuelve el libro de una estiba en orden de replay (log_id ASC).
func (r *TransactionLogRepo) ListByUnit(unitID string) ([]*entity.TransactionLogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM transaction_log WHERE unit_id = $1 ORDER BY log_id ASC`
	return r.list(query, unitID)
}

// ListRecent devuelve los últimos movimientos del sistema (log_id DESC).
func (r *TransactionLogRepo) ListRecent(limit int) ([]*entity.TransactionLogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM transaction_log ORDER BY log_id DESC LIMIT $1`
	return r.list(query, limit)
}

func (r *TransactionLogRepo) list(query string, args ...any) ([]*entity.TransactionLogEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list log: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionLogEntry
	for rows.Next() {
		var e entity.TransactionLogEntry
		if err := rows.Scan(&e.LogID, &e.TransactionID, &e.UnitID, &e.Operation,
			&e.QuantityChange, &e.PreviousQuantity, &e.NewQuantity, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
