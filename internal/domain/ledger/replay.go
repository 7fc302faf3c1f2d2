package ledger

import (
	"fmt"

	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

// Replay reconstruye la cantidad de una estiba a partir de sus entradas del
// libro en orden de LogID: la cantidad previa de la primera entrada más la
// suma de los deltas con signo de todas las entradas.
func Replay(entries []*entity.TransactionLogEntry) int64 {
	if len(entries) == 0 {
		return 0
	}
	qty := entries[0].PreviousQuantity
	for _, e := range entries {
		qty += e.SignedDelta()
	}
	return qty
}

// Verify comprueba que el libro de una estiba concilia con su estado actual:
// cada fila es internamente consistente, la cadena previa→nueva no tiene
// saltos y el replay completo reproduce la cantidad almacenada. Devuelve
// ErrLedgerCorrupt (envuelto con el detalle) ante la primera discrepancia.
func Verify(u *entity.Unit, entries []*entity.TransactionLogEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: la estiba %s no tiene movimientos registrados", domain.ErrLedgerCorrupt, u.UnitID)
	}
	if first := entries[0]; first.Operation != entity.OpInitialEntry {
		return fmt.Errorf("%w: el primer movimiento de %s es %q, no %q",
			domain.ErrLedgerCorrupt, u.UnitID, first.Operation, entity.OpInitialEntry)
	}
	prev := entries[0].PreviousQuantity
	for _, e := range entries {
		if e.UnitID != u.UnitID {
			return fmt.Errorf("%w: el movimiento %d pertenece a %s, no a %s",
				domain.ErrLedgerCorrupt, e.LogID, e.UnitID, u.UnitID)
		}
		if e.PreviousQuantity != prev {
			return fmt.Errorf("%w: el movimiento %d parte de %d pero el anterior dejó %d",
				domain.ErrLedgerCorrupt, e.LogID, e.PreviousQuantity, prev)
		}
		if got := e.PreviousQuantity + e.SignedDelta(); e.NewQuantity != got {
			return fmt.Errorf("%w: el movimiento %d registra %d pero %s calcula %d",
				domain.ErrLedgerCorrupt, e.LogID, e.NewQuantity, e.Operation, got)
		}
		prev = e.NewQuantity
	}
	if replayed := Replay(entries); replayed != u.Quantity {
		return fmt.Errorf("%w: replay de %s da %d y el estado almacenado es %d",
			domain.ErrLedgerCorrupt, u.UnitID, replayed, u.Quantity)
	}
	return nil
}
