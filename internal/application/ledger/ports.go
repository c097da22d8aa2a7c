package ledger

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el kardex: un
// consumo que falla a medias no deja mutaciones parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.StockBatchRepository,
		serialRepo repository.SerializedUnitRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
