package entity

import "time"

// Operaciones del libro de movimientos.
const (
	OpInitialEntry = "initial_entry" // alta de la estiba (la registra el motor, nunca el cliente)
	OpEntry        = "entry"         // entrada de stock
	OpExit         = "exit"          // salida de stock
	OpLevelChange  = "level_change"  // cambio de nivel de producción
	OpStatusChange = "status_change" // cambio de estado operativo
	OpStockAdjust  = "stock_adjust"  // ajuste con signo, acotado a [0, 100]
)

// ValidOperation indica si op es una operación conocida del libro.
func ValidOperation(op string) bool {
	switch op {
	case OpInitialEntry, OpEntry, OpExit, OpLevelChange, OpStatusChange, OpStockAdjust:
		return true
	}
	return false
}

// TransactionLogEntry es una fila inmutable del libro de movimientos.
// El Store asigna LogID en orden estrictamente creciente; una vez escrita,
// la fila no se actualiza ni se borra.
type TransactionLogEntry struct {
	LogID            int64
	TransactionID    string
	UnitID           string
	Operation        string
	QuantityChange   int64 // magnitud registrada; con signo solo en stock_adjust
	PreviousQuantity int64
	NewQuantity      int64
	Timestamp        time.Time
}

// SignedDelta devuelve el aporte con signo de la entrada al reconstruir
// la cantidad por replay: entradas suman, salidas restan, los ajustes
// aportan su cambio con signo y los cambios de nivel/estado aportan cero.
func (e TransactionLogEntry) SignedDelta() int64 {
	switch e.Operation {
	case OpInitialEntry, OpEntry, OpStockAdjust:
		return e.QuantityChange
	case OpExit:
		return -e.QuantityChange
	default:
		return 0
	}
}
