package reports

import (
	"time"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
)

// TokenEncoder emite la imagen escaneable del payload (el mismo códec que
// usa el alta de estibas).
type TokenEncoder interface {
	Encode(p entity.TokenPayload) ([]byte, error)
}

// LabelGenerator produce la etiqueta PDF imprimible de una estiba con su
// token embebido.
type LabelGenerator interface {
	Generate(u *entity.Unit, payload entity.TokenPayload) ([]byte, error)
}

// ReportGenerator produce el reporte PDF tabulado de un listado de estibas.
type ReportGenerator interface {
	Generate(units []dto.UnitResponse, generatedAt time.Time) ([]byte, error)
}
