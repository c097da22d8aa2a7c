package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el registro
// de auditoría del kardex.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error

	// GetByReference busca un movimiento por su llave de idempotencia y tipo.
	// Nil si no existe. Se consulta dentro de la misma transacción del consumo
	// para detectar reintentos sin descontar dos veces.
	GetByReference(ctx context.Context, reference, movementType string) (*entity.StockMovement, error)

	// ListByItem lista los movimientos del artículo en un rango opcional.
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
