package ledger

import (
	"context"

	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del Store, pasando
// repositorios atados a esa transacción. Garantiza que la actualización de la
// estiba y el append al libro de movimientos se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		unitRepo repository.UnitRepository,
		logRepo repository.TransactionLogRepository,
	) error) error
}

// TokenCodec define el puerto del códec de tokens escaneables: Encode emite
// la imagen QR del payload y Decode interpreta los bytes que entrega el
// lector (el texto del símbolo, no la imagen).
type TokenCodec interface {
	Encode(p entity.TokenPayload) ([]byte, error)
	Decode(raw []byte) (*entity.TokenPayload, error)
}
