package repository

import "github.com/jhoicas/Pallets-api/internal/domain/entity"

// TransactionLogRepository define el puerto del libro de movimientos.
// El libro es append-only: no existen operaciones de actualización ni borrado.
type TransactionLogRepository interface {
	// Append persiste la fila y asigna e.LogID (creciente, nunca reutilizado).
	Append(e *entity.TransactionLogEntry) error
	// ListByUnit devuelve los movimientos de una estiba en orden de LogID
	// ascendente, el orden que exige el replay.
	ListByUnit(unitID string) ([]*entity.TransactionLogEntry, error)
	// ListRecent devuelve los últimos movimientos del sistema, el más
	// reciente primero.
	ListRecent(limit int) ([]*entity.TransactionLogEntry, error)
}
