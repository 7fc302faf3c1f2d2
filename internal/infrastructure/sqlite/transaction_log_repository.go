package sqlite

import (
	"fmt"

	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

const logColumns = "log_id, transaction_id, unit_id, operation, quantity_change, previous_quantity, new_quantity, timestamp"

// TransactionLogRepo implementa repository.TransactionLogRepository sobre
// SQLite. Solo anexa; los triggers del esquema rechazan cualquier mutación.
type TransactionLogRepo struct {
	q querier
}

var _ repository.TransactionLogRepository = (*TransactionLogRepo)(nil)

// NewTransactionLogRepository crea el repositorio sobre una conexión o
// transacción.
func NewTransactionLogRepository(q querier) *TransactionLogRepo {
	return &TransactionLogRepo{q: q}
}

// Append anexa una entrada al libro y deja el log_id asignado en e.
func (r *TransactionLogRepo) Append(e *entity.TransactionLogEntry) error {
	query := `
		INSERT INTO transaction_log (transaction_id, unit_id, operation, quantity_change, previous_quantity, new_quantity, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.q.Exec(query,
		e.TransactionID, e.UnitID, e.Operation,
		e.QuantityChange, e.PreviousQuantity, e.NewQuantity, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("anexar al libro: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("anexar al libro: %w", err)
	}
	e.LogID = id
	return nil
}

// ListByUnit devuelve el historial completo de una estiba en orden de anexado.
func (r *TransactionLogRepo) ListByUnit(unitID string) ([]*entity.TransactionLogEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM transaction_log WHERE unit_id = ? ORDER BY log_id ASC", logColumns)
	return r.list(query, unitID)
}

// ListRecent devuelve las últimas entradas del libro, la más nueva primero.
func (r *TransactionLogRepo) ListRecent(limit int) ([]*entity.TransactionLogEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM transaction_log ORDER BY log_id DESC LIMIT ?", logColumns)
	return r.list(query, limit)
}

func (r *TransactionLogRepo) list(query string, args ...any) ([]*entity.TransactionLogEntry, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("consultar libro: %w", err)
	}
	defer rows.Close()

	var entries []*entity.TransactionLogEntry
	for rows.Next() {
		var e entity.TransactionLogEntry
		if err := rows.Scan(
			&e.LogID, &e.TransactionID, &e.UnitID, &e.Operation,
			&e.QuantityChange, &e.PreviousQuantity, &e.NewQuantity, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("leer entrada del libro: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("consultar libro: %w", err)
	}
	return entries, nil
}
