package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// querier abstrae *sql.DB y *sql.Tx para que los repositorios sirvan dentro
// y fuera de transacción.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

var (
	_ querier = (*sql.DB)(nil)
	_ querier = (*sql.Tx)(nil)
)

const unitColumns = "unit_id, label, company, quantity, level, status, deadline, last_updated, created_at"

// UnitRepo implementa repository.UnitRepository sobre SQLite.
type UnitRepo struct {
	q querier
}

var _ repository.UnitRepository = (*UnitRepo)(nil)

// NewUnitRepository crea el repositorio sobre una conexión o transacción.
func NewUnitRepository(q querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// GetByID busca una estiba por su identificador. Devuelve nil sin error si
// no existe.
func (r *UnitRepo) GetByID(unitID string) (*entity.Unit, error) {
	return r.getOne(unitID)
}

// GetByIDForUpdate es idéntico a GetByID: SQLite no tiene FOR UPDATE y la
// transacción de escritura ya bloquea la base completa.
func (r *UnitRepo) GetByIDForUpdate(unitID string) (*entity.Unit, error) {
	return r.getOne(unitID)
}

func (r *UnitRepo) getOne(unitID string) (*entity.Unit, error) {
	query := fmt.Sprintf("SELECT %s FROM units WHERE unit_id = ?", unitColumns)

	var u entity.Unit
	var deadline sql.NullTime
	err := r.q.QueryRow(query, unitID).Scan(
		&u.UnitID, &u.Label, &u.Company, &u.Quantity,
		&u.Level, &u.Status, &deadline, &u.LastUpdated, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar estiba: %w", err)
	}
	if deadline.Valid {
		d := deadline.Time
		u.Deadline = &d
	}
	return &u, nil
}

// Insert registra una estiba nueva. Si el identificador ya existe devuelve
// domain.ErrDuplicate.
func (r *UnitRepo) Insert(u *entity.Unit) error {
	query := `
		INSERT INTO units (unit_id, label, company, quantity, level, status, deadline, last_updated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.q.Exec(query,
		u.UnitID, u.Label, u.Company, u.Quantity,
		u.Level, u.Status, u.Deadline, u.LastUpdated, u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if isCheckViolation(err) {
		return domain.ErrOutOfRange
	}
	if err != nil {
		return fmt.Errorf("insertar estiba: %w", err)
	}
	return nil
}

// Update sobrescribe el estado de una estiba existente.
func (r *UnitRepo) Update(u *entity.Unit) error {
	query := `
		UPDATE units
		SET label = ?, company = ?, quantity = ?, level = ?, status = ?, deadline = ?, last_updated = ?
		WHERE unit_id = ?`

	res, err := r.q.Exec(query,
		u.Label, u.Company, u.Quantity, u.Level, u.Status,
		u.Deadline, u.LastUpdated, u.UnitID,
	)
	if isCheckViolation(err) {
		return domain.ErrOutOfRange
	}
	if err != nil {
		return fmt.Errorf("actualizar estiba: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("actualizar estiba: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve las estibas que cumplen el filtro, ya ordenadas.
func (r *UnitRepo) List(filter repository.UnitFilter) ([]*entity.Unit, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM units", unitColumns)

	var conds []string
	var args []any
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Level != "" {
		conds = append(conds, "level = ?")
		args = append(args, filter.Level)
	}
	if filter.QuantityBelow != nil {
		conds = append(conds, "quantity < ?")
		args = append(args, *filter.QuantityBelow)
	}
	if filter.DeadlineBefore != nil {
		conds = append(conds, "deadline IS NOT NULL AND deadline <= ?")
		args = append(args, *filter.DeadlineBefore)
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	switch filter.OrderBy {
	case "deadline":
		sb.WriteString(" ORDER BY deadline ASC NULLS LAST, unit_id ASC")
	case "last_updated":
		sb.WriteString(" ORDER BY last_updated DESC, unit_id ASC")
	case "quantity":
		sb.WriteString(" ORDER BY quantity ASC, unit_id ASC")
	default:
		sb.WriteString(" ORDER BY unit_id ASC")
	}

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listar estibas: %w", err)
	}
	defer rows.Close()

	var units []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		var deadline sql.NullTime
		if err := rows.Scan(
			&u.UnitID, &u.Label, &u.Company, &u.Quantity,
			&u.Level, &u.Status, &deadline, &u.LastUpdated, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("leer estiba: %w", err)
		}
		if deadline.Valid {
			d := deadline.Time
			u.Deadline = &d
		}
		units = append(units, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar estibas: %w", err)
	}
	return units, nil
}
