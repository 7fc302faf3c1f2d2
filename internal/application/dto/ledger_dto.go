package dto

import (
	"time"

	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

// TransactionRequest body para POST /api/units/:id/transactions.
// Quantity aplica a entry/exit/stock_adjust; Level y Status a sus cambios.
// Label solo se usa cuando una entrada da de alta un lote desconocido.
type TransactionRequest struct {
	Operation string `json:"operation"`
	Quantity  int64  `json:"quantity,omitempty"`
	Level     string `json:"level,omitempty"`
	Status    string `json:"status,omitempty"`
	Label     string `json:"label,omitempty"`
}

// TransactionLogResponse fila pública del libro de movimientos.
type TransactionLogResponse struct {
	LogID            int64     `json:"log_id"`
	TransactionID    string    `json:"transaction_id"`
	UnitID           string    `json:"unit_id"`
	Operation        string    `json:"operation"`
	QuantityChange   int64     `json:"quantity_change"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Timestamp        time.Time `json:"timestamp"`
}

// NewTransactionLogResponses mapea filas del libro a su forma pública.
func NewTransactionLogResponses(entries []*entity.TransactionLogEntry) []TransactionLogResponse {
	out := make([]TransactionLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TransactionLogResponse{
			LogID:            e.LogID,
			TransactionID:    e.TransactionID,
			UnitID:           e.UnitID,
			Operation:        e.Operation,
			QuantityChange:   e.QuantityChange,
			PreviousQuantity: e.PreviousQuantity,
			NewQuantity:      e.NewQuantity,
			Timestamp:        e.Timestamp,
		})
	}
	return out
}

// UnitHistoryResponse estiba junto con su libro completo en orden de replay.
type UnitHistoryResponse struct {
	Unit UnitResponse             `json:"unit"`
	Logs []TransactionLogResponse `json:"logs"`
}

// VerifyResultResponse resultado de conciliación de una estiba.
type VerifyResultResponse struct {
	UnitID           string `json:"unit_id"`
	StoredQuantity   int64  `json:"stored_quantity"`
	ReplayedQuantity int64  `json:"replayed_quantity"`
	Consistent       bool   `json:"consistent"`
	Detail           string `json:"detail,omitempty"`
}

// VerifyReportResponse conciliación del sistema completo.
type VerifyReportResponse struct {
	Consistent bool                   `json:"consistent"`
	Checked    int                    `json:"checked"`
	Results    []VerifyResultResponse `json:"results"`
}
