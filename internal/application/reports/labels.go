package reports

import (
	"context"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// LabelUseCase reimprime los artefactos físicos de una estiba: el token PNG
// suelto y la etiqueta PDF con el token embebido. El payload declara la
// cantidad actual, igual que el alta declara la inicial.
type LabelUseCase struct {
	unitRepo  repository.UnitRepository
	encoder   TokenEncoder
	generator LabelGenerator
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(unitRepo repository.UnitRepository, encoder TokenEncoder, generator LabelGenerator) *LabelUseCase {
	return &LabelUseCase{unitRepo: unitRepo, encoder: encoder, generator: generator}
}

// TokenPNG emite la imagen QR del token de la estiba.
func (uc *LabelUseCase) TokenPNG(ctx context.Context, unitID string) ([]byte, error) {
	unit, err := uc.fetch(unitID)
	if err != nil {
		return nil, err
	}
	return uc.encoder.Encode(payloadFor(unit))
}

// LabelPDF genera la etiqueta imprimible de la estiba.
func (uc *LabelUseCase) LabelPDF(ctx context.Context, unitID string) ([]byte, error) {
	unit, err := uc.fetch(unitID)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(unit, payloadFor(unit))
}

// Payload devuelve el payload vigente (lo usa la vista de escaneo del CLI).
func (uc *LabelUseCase) Payload(ctx context.Context, unitID string) (*dto.TokenPayloadResponse, error) {
	unit, err := uc.fetch(unitID)
	if err != nil {
		return nil, err
	}
	p := payloadFor(unit)
	resp := dto.NewTokenPayloadResponse(&p)
	return &resp, nil
}

func (uc *LabelUseCase) fetch(unitID string) (*entity.Unit, error) {
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrUnknownUnit
	}
	return unit, nil
}

func payloadFor(u *entity.Unit) entity.TokenPayload {
	return entity.TokenPayload{UnitID: u.UnitID, Label: u.Label, Quantity: u.Quantity}
}
