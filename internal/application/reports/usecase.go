// Package reports implementa las consultas de solo lectura del sistema:
// listados filtrados, historial por estiba, conciliación del libro por
// replay y exportaciones (CSV, token PNG, etiqueta PDF).
package reports

import (
	"context"
	"time"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/ledger"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// Valores por defecto de los paneles (los mismos del tablero original).
const (
	DefaultRecentUnits = 5
	DefaultRecentLogs  = 20
)

// ReportUseCase responde las consultas de lectura sobre estibas y libro.
// No escribe nunca: toda mutación pasa por el motor de transacciones.
type ReportUseCase struct {
	unitRepo repository.UnitRepository
	logRepo  repository.TransactionLogRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(unitRepo repository.UnitRepository, logRepo repository.TransactionLogRepository) *ReportUseCase {
	return &ReportUseCase{unitRepo: unitRepo, logRepo: logRepo}
}

// ─────────────────────────────────────────────
// Listados
// ─────────────────────────────────────────────

// ListUnits aplica los filtros del reporte y devuelve las estibas en la
// representación pública. Limit <= 0 lista todo (exportaciones).
func (uc *ReportUseCase) ListUnits(ctx context.Context, q dto.ReportQuery) ([]dto.UnitResponse, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	units, err := uc.unitRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return dto.NewUnitResponses(units), nil
}

// RecentUnits devuelve las estibas con actividad más reciente.
func (uc *ReportUseCase) RecentUnits(ctx context.Context, limit int) ([]dto.UnitResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentUnits
	}
	units, err := uc.unitRepo.List(repository.UnitFilter{OrderBy: "last_updated", Limit: limit})
	if err != nil {
		return nil, err
	}
	return dto.NewUnitResponses(units), nil
}

// RecentTransactions devuelve los últimos movimientos del sistema completo.
func (uc *ReportUseCase) RecentTransactions(ctx context.Context, limit int) ([]dto.TransactionLogResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLogs
	}
	entries, err := uc.logRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return dto.NewTransactionLogResponses(entries), nil
}

// GetUnit devuelve una estiba por su identificador.
func (uc *ReportUseCase) GetUnit(ctx context.Context, unitID string) (*dto.UnitResponse, error) {
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrUnknownUnit
	}
	resp := dto.NewUnitResponse(unit)
	return &resp, nil
}

// UnitHistory devuelve una estiba con su libro completo en orden de replay.
func (uc *ReportUseCase) UnitHistory(ctx context.Context, unitID string) (*dto.UnitHistoryResponse, error) {
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrUnknownUnit
	}
	entries, err := uc.logRepo.ListByUnit(unitID)
	if err != nil {
		return nil, err
	}
	return &dto.UnitHistoryResponse{
		Unit: dto.NewUnitResponse(unit),
		Logs: dto.NewTransactionLogResponses(entries),
	}, nil
}

// ─────────────────────────────────────────────
// Conciliación
// ─────────────────────────────────────────────

// VerifyUnit reconcilia una estiba contra su libro por replay.
func (uc *ReportUseCase) VerifyUnit(ctx context.Context, unitID string) (*dto.VerifyResultResponse, error) {
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrUnknownUnit
	}
	return uc.verify(unit)
}

// VerifyAll reconcilia todas las estibas; el reporte global solo es
// consistente si cada una concilia.
func (uc *ReportUseCase) VerifyAll(ctx context.Context) (*dto.VerifyReportResponse, error) {
	units, err := uc.unitRepo.List(repository.UnitFilter{})
	if err != nil {
		return nil, err
	}
	report := &dto.VerifyReportResponse{Consistent: true, Checked: len(units)}
	for _, unit := range units {
		res, err := uc.verify(unit)
		if err != nil {
			return nil, err
		}
		if !res.Consistent {
			report.Consistent = false
		}
		report.Results = append(report.Results, *res)
	}
	return report, nil
}

func (uc *ReportUseCase) verify(unit *entity.Unit) (*dto.VerifyResultResponse, error) {
	entries, err := uc.logRepo.ListByUnit(unit.UnitID)
	if err != nil {
		return nil, err
	}
	res := &dto.VerifyResultResponse{
		UnitID:           unit.UnitID,
		StoredQuantity:   unit.Quantity,
		ReplayedQuantity: ledger.Replay(entries),
		Consistent:       true,
	}
	if verr := ledger.Verify(unit, entries); verr != nil {
		res.Consistent = false
		res.Detail = verr.Error()
	}
	return res, nil
}

// ─────────────────────────────────────────────
// Filtros
// ─────────────────────────────────────────────

func buildFilter(q dto.ReportQuery) (repository.UnitFilter, error) {
	var f repository.UnitFilter
	if q.Status != "" {
		if !entity.ValidStatus(q.Status) {
			return f, domain.ErrInvalidInput
		}
		f.Status = q.Status
	}
	if q.Level != "" {
		if !entity.ValidLevel(q.Level) {
			return f, domain.ErrInvalidInput
		}
		f.Level = q.Level
	}
	if q.CriticalBelow > 0 {
		below := q.CriticalBelow
		f.QuantityBelow = &below
	}
	if q.DueWithinDays > 0 {
		until := time.Now().AddDate(0, 0, q.DueWithinDays)
		f.DeadlineBefore = &until
	}
	switch q.OrderBy {
	case "", "deadline", "last_updated", "quantity":
		f.OrderBy = q.OrderBy
	default:
		return f, domain.ErrInvalidInput
	}
	f.Limit = q.Limit
	f.Offset = q.Offset
	return f, nil
}
