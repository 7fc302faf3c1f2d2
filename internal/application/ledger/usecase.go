package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// Cotas del ajuste de stock expresado como porcentaje de ocupación.
const (
	minAdjustedQuantity = 0
	maxAdjustedQuantity = 100
)

// ApplyTransactionUseCase aplica operaciones del libro de movimientos de forma
// transaccional (entry, exit, level_change, status_change, stock_adjust) con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback. Es el único camino
// por el que cambia la cantidad de una estiba.
type ApplyTransactionUseCase struct {
	txRunner TxRunner
}

// NewApplyTransactionUseCase construye el caso de uso.
func NewApplyTransactionUseCase(txRunner TxRunner) *ApplyTransactionUseCase {
	return &ApplyTransactionUseCase{txRunner: txRunner}
}

// TransactionInputDTO entrada para aplicar una operación del libro.
// Para entry/exit: UnitID y Quantity > 0. Para stock_adjust: Quantity con signo.
// Para level_change/status_change: Level o Status dentro del dominio.
// Label solo se usa en el alta implícita (entry sobre estiba desconocida).
type TransactionInputDTO struct {
	UnitID    string
	Operation string
	Quantity  int64
	Level     string
	Status    string
	Label     string
}

// Apply inicia una transacción, bloquea la fila de la estiba, aplica la
// operación y escribe la fila del libro antes del Commit. Si la operación se
// rechaza (stock insuficiente, rango, estiba desconocida) no queda rastro en
// el libro. Devuelve la estiba con su estado posterior.
func (uc *ApplyTransactionUseCase) Apply(ctx context.Context, input TransactionInputDTO) (*entity.Unit, error) {
	// Validar operación y campos. El alta initial_entry la emite el motor al
	// crear la estiba; nunca se acepta como operación solicitada.
	switch input.Operation {
	case entity.OpEntry, entity.OpExit:
		if input.UnitID == "" || input.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.OpStockAdjust:
		if input.UnitID == "" || input.Quantity == 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.OpLevelChange:
		if input.UnitID == "" || !entity.ValidLevel(input.Level) {
			return nil, domain.ErrInvalidInput
		}
	case entity.OpStatusChange:
		if input.UnitID == "" || !entity.ValidStatus(input.Status) {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()

	var result *entity.Unit
	err := uc.txRunner.Run(ctx, func(
		unitRepo repository.UnitRepository,
		logRepo repository.TransactionLogRepository,
	) error {
		// Bloquea la fila de la estiba (SELECT FOR UPDATE) para evitar
		// condiciones de carrera entre operaciones concurrentes.
		unit, err := unitRepo.GetByIDForUpdate(input.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			// Solo una entrada puede dar de alta una estiba desconocida.
			if input.Operation != entity.OpEntry {
				return domain.ErrUnknownUnit
			}
			unit, err = uc.doInitialEntry(unitRepo, logRepo, input, now, txID)
			if err != nil {
				return err
			}
			result = unit
			return nil
		}

		switch input.Operation {
		case entity.OpEntry:
			err = uc.doEntry(unitRepo, logRepo, unit, input.Quantity, now, txID)
		case entity.OpExit:
			err = uc.doExit(unitRepo, logRepo, unit, input.Quantity, now, txID)
		case entity.OpStockAdjust:
			err = uc.doStockAdjust(unitRepo, logRepo, unit, input.Quantity, now, txID)
		case entity.OpLevelChange:
			err = uc.doLevelChange(unitRepo, logRepo, unit, input.Level, now, txID)
		case entity.OpStatusChange:
			err = uc.doStatusChange(unitRepo, logRepo, unit, input.Status, now, txID)
		}
		if err != nil {
			return err
		}
		result = unit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// doInitialEntry da de alta la estiba con su primer movimiento. El nivel y el
// estado arrancan en Raw/Pending; el registro explícito usa su propio caso de uso.
func (uc *ApplyTransactionUseCase) doInitialEntry(
	unitRepo repository.UnitRepository,
	logRepo repository.TransactionLogRepository,
	input TransactionInputDTO,
	now time.Time, txID string,
) (*entity.Unit, error) {
	unit := &entity.Unit{
		UnitID:      input.UnitID,
		Label:       input.Label,
		Quantity:    input.Quantity,
		Level:       entity.LevelRaw,
		Status:      entity.StatusPending,
		LastUpdated: now,
		CreatedAt:   now,
	}
	if err := unitRepo.Insert(unit); err != nil {
		return nil, err
	}
	err := logRepo.Append(&entity.TransactionLogEntry{
		TransactionID:    txID,
		UnitID:           unit.UnitID,
		Operation:        entity.OpInitialEntry,
		QuantityChange:   unit.Quantity,
		PreviousQuantity: 0,
		NewQuantity:      unit.Quantity,
		Timestamp:        now,
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// doEntry suma la cantidad (sin cota superior) y registra el movimiento.
func (uc *ApplyTransactionUseCase) doEntry(
	unitRepo repository.UnitRepository,
	logRepo repository.TransactionLogRepository,
	unit *entity.Unit,
	quantity int64,
	now time.Time, txID string,
) error {
	prev := unit.Quantity
	unit.Quantity = prev + quantity
	unit.LastUpdated = now
	if err := unitRepo.Update(unit); err != nil {
		return err
	}
	return logRepo.Append(&entity.TransactionLogEntry{
		TransactionID:    txID,
		UnitID:           unit.UnitID,
		Operation:        entity.OpEntry,
		QuantityChange:   quantity,
		PreviousQuantity: prev,
		NewQuantity:      unit.Quantity,
		Timestamp:        now,
	})
}

// doExit verifica StockActual >= CantidadSolicitada antes de restar. Un
// rechazo no escribe nada: ni estado ni fila en el libro.
func (uc *ApplyTransactionUseCase) doExit(
	unitRepo repository.UnitRepository,
	logRepo repository.TransactionLogRepository,
	unit *entity.Unit,
	quantity int64,
	now time.Time, txID string,
) error {
	if unit.Quantity < quantity {
		return domain.ErrInsufficientStock
	}
	prev := unit.Quantity
	unit.Quantity = prev - quantity
	unit.LastUpdated = now
	if err := unitRepo.Update(unit); err != nil {
		return err
	}
	return logRepo.Append(&entity.TransactionLogEntry{
		TransactionID:    txID,
		UnitID:           unit.UnitID,
		Operation:        entity.OpExit,
		QuantityChange:   quantity,
		PreviousQuantity: prev,
		NewQuantity:      unit.Quantity,
		Timestamp:        now,
	})
}

// doStockAdjust aplica un cambio con signo acotado: la cantidad resultante
// debe quedar dentro de [0, 100] (porcentaje de ocupación de la estiba).
func (uc *ApplyTransactionUseCase) doStockAdjust(
	unitRepo repository.UnitRepository,
	logRepo repository.TransactionLogRepository,
	unit *entity.Unit,
	change int64,
	now time.Time, txID string,
) error {
	prev := unit.Quantity
	next := prev + change
	if next < minAdjustedQuantity || next > maxAdjustedQuantity {
		return domain.ErrOutOfRange
	}
	unit.Quantity = next
	unit.LastUpdated = now
	if err := unitRepo.Update(unit); err != nil {
		return err
	}
	return logRepo.Append(&entity.TransactionLogEntry{
		TransactionID:    txID,
		UnitID:           unit.UnitID,
		Operation:        entity.OpStockAdjust,
		QuantityChange:   change,
		PreviousQuantity: prev,
		NewQuantity:      unit.Quantity,
		Timestamp:        now,
	})
}

// doLevelChange cambia el nivel sin tocar la cantidad; la fila del libro
// queda con cambio cero para conservar la pista de auditoría completa.
func (uc *ApplyTransactionUseCase) doLevelChange(
	unitRepo repository.UnitRepository,
	logRepo repository.TransactionLogRepository,
	unit *entity.Unit,
	level string,
	now time.Time, txID string,
) error {
	unit.Level = level
	unit.LastUpdated = now
	if err := unitRepo.Update(unit); err != nil {
		return err
	}
	return logRepo.Append(&entity.TransactionLogEntry{
		TransactionID:    txID,
		UnitID:           unit.UnitID,
		Operation:        entity.OpLevelChange,
		QuantityChange:   0,
		PreviousQuantity: unit.Quantity,
		NewQuantity:      unit.Quantity,
		Timestamp:        now,
	})
}

// doStatusChange análogo a doLevelChange para el estado operativo.
func (uc *ApplyTransactionUseCase) doStatusChange(
	unitRepo repository.UnitRepository,
	logRepo repository.TransactionLogRepository,
	unit *entity.Unit,
	status string,
	now time.Time, txID string,
) error {
	unit.Status = status
	unit.LastUpdated = now
	if err := unitRepo.Update(unit); err != nil {
		return err
	}
	return logRepo.Append(&entity.TransactionLogEntry{
		TransactionID:    txID,
		UnitID:           unit.UnitID,
		Operation:        entity.OpStatusChange,
		QuantityChange:   0,
		PreviousQuantity: unit.Quantity,
		NewQuantity:      unit.Quantity,
		Timestamp:        now,
	})
}
