package repository

import (
	"time"

	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

// UnitFilter acota los listados de estibas. Los campos en cero no filtran.
type UnitFilter struct {
	Status         string     // estado exacto
	Level          string     // nivel exacto
	QuantityBelow  *int64     // stock crítico: quantity < QuantityBelow
	DeadlineBefore *time.Time // fecha límite anterior o igual a la indicada
	OrderBy        string     // "deadline" | "last_updated" | "quantity"; vacío = unit_id
	Limit          int        // <= 0 lista todo
	Offset         int
}

// UnitRepository define el puerto de persistencia del estado actual de las estibas.
type UnitRepository interface {
	GetByID(unitID string) (*entity.Unit, error)
	// GetByIDForUpdate bloquea la fila para la transacción en curso (SELECT FOR UPDATE).
	GetByIDForUpdate(unitID string) (*entity.Unit, error)
	// Insert falla con ErrDuplicate si el identificador ya existe.
	Insert(u *entity.Unit) error
	Update(u *entity.Unit) error
	List(f UnitFilter) ([]*entity.Unit, error)
}
