package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/ledger"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// RegisterUnitUseCase da de alta estibas nuevas: genera el identificador de
// lote, emite el token escaneable y persiste la estiba con su movimiento
// initial_entry en una sola transacción.
type RegisterUnitUseCase struct {
	txRunner TxRunner
	codec    TokenCodec
}

// NewRegisterUnitUseCase construye el caso de uso.
func NewRegisterUnitUseCase(txRunner TxRunner, codec TokenCodec) *RegisterUnitUseCase {
	return &RegisterUnitUseCase{txRunner: txRunner, codec: codec}
}

// RegisterInputDTO entrada para dar de alta una estiba.
// Label y Company son obligatorios; Level vacío arranca en Raw.
type RegisterInputDTO struct {
	Label           string
	Company         string
	Level           string
	Deadline        *time.Time
	InitialQuantity int64
}

// Register valida la entrada, genera el identificador y codifica el token
// antes de escribir: si el token no se puede emitir, no se persiste nada.
// Devuelve la estiba creada y el PNG del token.
func (uc *RegisterUnitUseCase) Register(ctx context.Context, input RegisterInputDTO) (*entity.Unit, []byte, error) {
	if input.Label == "" || input.Company == "" || input.InitialQuantity < 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	level := input.Level
	if level == "" {
		level = entity.LevelRaw
	}
	if !entity.ValidLevel(level) {
		return nil, nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()
	unitID := ledger.NewUnitID(input.Company, input.Label, now)

	tokenPNG, err := uc.codec.Encode(entity.TokenPayload{
		UnitID:   unitID,
		Label:    input.Label,
		Quantity: input.InitialQuantity,
	})
	if err != nil {
		return nil, nil, err
	}

	unit := &entity.Unit{
		UnitID:      unitID,
		Label:       input.Label,
		Company:     input.Company,
		Quantity:    input.InitialQuantity,
		Level:       level,
		Status:      entity.StatusPending,
		Deadline:    input.Deadline,
		LastUpdated: now,
		CreatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(
		unitRepo repository.UnitRepository,
		logRepo repository.TransactionLogRepository,
	) error {
		if err := unitRepo.Insert(unit); err != nil {
			return err
		}
		return logRepo.Append(&entity.TransactionLogEntry{
			TransactionID:    txID,
			UnitID:           unit.UnitID,
			Operation:        entity.OpInitialEntry,
			QuantityChange:   unit.Quantity,
			PreviousQuantity: 0,
			NewQuantity:      unit.Quantity,
			Timestamp:        now,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return unit, tokenPNG, nil
}
