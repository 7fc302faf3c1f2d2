package dto

import "github.com/jhoicas/Pallets-api/internal/domain/entity"

// ScanRequest body para POST /api/scan: el texto que emitió el lector.
type ScanRequest struct {
	Data string `json:"data"`
}

// ScanProcessRequest body para POST /api/scan/transactions.
// Operation solo admite entry o exit; la cantidad viene dentro del token.
type ScanProcessRequest struct {
	Data      string `json:"data"`
	Operation string `json:"operation"`
}

// TokenPayloadResponse payload decodificado de un token.
type TokenPayloadResponse struct {
	UnitID   string `json:"unit_id"`
	Label    string `json:"label"`
	Quantity int64  `json:"quantity"`
}

// ScanResponse resultado de una consulta por escaneo. Unit es nil cuando el
// lote aún no está registrado.
type ScanResponse struct {
	Payload    TokenPayloadResponse `json:"payload"`
	Registered bool                 `json:"registered"`
	Unit       *UnitResponse        `json:"unit,omitempty"`
}

// NewTokenPayloadResponse mapea el payload del token.
func NewTokenPayloadResponse(p *entity.TokenPayload) TokenPayloadResponse {
	return TokenPayloadResponse{UnitID: p.UnitID, Label: p.Label, Quantity: p.Quantity}
}
