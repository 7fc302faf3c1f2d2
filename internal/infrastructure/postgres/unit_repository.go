package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

const unitColumns = "unit_id, label, company, quantity, level, status, deadline, last_updated, created_at"

// UnitRepo implementación de UnitRepository sobre PostgreSQL (usable con pool o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de estibas. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// GetByID obtiene una estiba por identificador; nil si no existe.
func (r *UnitRepo) GetByID(unitID string) (*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE unit_id = $1`
	return r.getOne(query, unitID)
}

// GetByIDForUpdate obtiene la estiba y bloquea la fila (SELECT FOR UPDATE).
// Sobre una fila inexistente no hay nada que bloquear: el alta concurrente la
// resuelve la restricción de clave primaria en Insert.
func (r *UnitRepo) GetByIDForUpdate(unitID string) (*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE unit_id = $1 FOR UPDATE`
	return r.getOne(query, unitID)
}

func (r *UnitRepo) getOne(query, unitID string) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(context.Background(), query, unitID).Scan(
		&u.UnitID, &u.Label, &u.Company, &u.Quantity, &u.Level, &u.Status,
		&u.Deadline, &u.LastUpdated, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Insert persiste una estiba nueva; ErrDuplicate si el identificador ya existe.
func (r *UnitRepo) Insert(u *entity.Unit) error {
	query := `
		INSERT INTO units (unit_id, label, company, quantity, level, status, deadline, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		u.UnitID, u.Label, u.Company, u.Quantity, u.Level, u.Status,
		u.Deadline, u.LastUpdated, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return domain.ErrOutOfRange
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// Update sobrescribe el estado de una estiba existente. El identificador no
// cambia nunca.
func (r *UnitRepo) Update(u *entity.Unit) error {
	query := `
		UPDATE units
		SET label = $2, company = $3, quantity = $4, level = $5, status = $6,
		    deadline = $7, last_updated = $8
		WHERE unit_id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		u.UnitID, u.Label, u.Company, u.Quantity, u.Level, u.Status,
		u.Deadline, u.LastUpdated,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrOutOfRange
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List aplica los filtros con argumentos posicionales; el orden solo admite
// columnas de una lista blanca, nunca texto del cliente.
func (r *UnitRepo) List(f repository.UnitFilter) ([]*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units`
	var args []any
	pos := 1
	appendCond := func(cond string, arg any) {
		if pos == 1 {
			query += " WHERE "
		} else {
			query += " AND "
		}
		query += fmt.Sprintf(cond, pos)
		args = append(args, arg)
		pos++
	}
	if f.Status != "" {
		appendCond("status = $%d", f.Status)
	}
	if f.Level != "" {
		appendCond("level = $%d", f.Level)
	}
	if f.QuantityBelow != nil {
		appendCond("quantity < $%d", *f.QuantityBelow)
	}
	if f.DeadlineBefore != nil {
		appendCond("deadline <= $%d", *f.DeadlineBefore)
	}

	switch f.OrderBy {
	case "deadline":
		query += " ORDER BY deadline ASC NULLS LAST, unit_id ASC"
	case "last_updated":
		query += " ORDER BY last_updated DESC, unit_id ASC"
	case "quantity":
		query += " ORDER BY quantity ASC, unit_id ASC"
	default:
		query += " ORDER BY unit_id ASC"
	}
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.UnitID, &u.Label, &u.Company, &u.Quantity, &u.Level,
			&u.Status, &u.Deadline, &u.LastUpdated, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
