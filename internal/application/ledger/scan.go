package ledger

import (
	"context"

	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// ScanUseCase resuelve tokens escaneados: consulta del estado de la estiba y
// aplicación de entradas/salidas con la cantidad declarada en el token.
type ScanUseCase struct {
	codec    TokenCodec
	apply    *ApplyTransactionUseCase
	unitRepo repository.UnitRepository
}

// NewScanUseCase construye el caso de uso.
func NewScanUseCase(codec TokenCodec, apply *ApplyTransactionUseCase, unitRepo repository.UnitRepository) *ScanUseCase {
	return &ScanUseCase{codec: codec, apply: apply, unitRepo: unitRepo}
}

// Lookup decodifica el token y devuelve el payload junto con el estado actual
// de la estiba; unit nil significa que el lote aún no está registrado.
func (uc *ScanUseCase) Lookup(ctx context.Context, raw []byte) (*entity.TokenPayload, *entity.Unit, error) {
	payload, err := uc.codec.Decode(raw)
	if err != nil {
		return nil, nil, err
	}
	unit, err := uc.unitRepo.GetByID(payload.UnitID)
	if err != nil {
		return nil, nil, err
	}
	return payload, unit, nil
}

// Process decodifica el token y aplica la operación con la cantidad del
// payload. Desde el lector solo tienen sentido entradas y salidas; una
// entrada sobre un lote desconocido lo da de alta.
func (uc *ScanUseCase) Process(ctx context.Context, raw []byte, operation string) (*entity.Unit, error) {
	if operation != entity.OpEntry && operation != entity.OpExit {
		return nil, domain.ErrInvalidInput
	}
	payload, err := uc.codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	return uc.apply.Apply(ctx, TransactionInputDTO{
		UnitID:    payload.UnitID,
		Operation: operation,
		Quantity:  payload.Quantity,
		Label:     payload.Label,
	})
}
