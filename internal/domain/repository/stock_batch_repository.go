package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// StockBatchRepository define el puerto de persistencia para lotes de stock.
// Los métodos de mutación se usan dentro de transacciones (TxRunner) para
// garantizar la linealización de consumos y ajustes sobre el mismo lote.
type StockBatchRepository interface {
	// Create inserta el lote. Devuelve domain.ErrDuplicateBatch si ya existe
	// un lote con el mismo (itemID, batchNumber).
	Create(ctx context.Context, batch *entity.StockBatch) error

	// Get obtiene el lote por identidad o nil si no existe.
	Get(ctx context.Context, itemID, batchNumber string) (*entity.StockBatch, error)

	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) y la devuelve.
	// Nil si no existe.
	GetForUpdate(ctx context.Context, itemID, batchNumber string) (*entity.StockBatch, error)

	// UpdateQuantities persiste AvailableQty y SoldQty del lote.
	UpdateQuantities(ctx context.Context, batch *entity.StockBatch) error

	// SumAvailableByItem suma AvailableQty de todos los lotes del artículo.
	SumAvailableByItem(ctx context.Context, itemID string) (decimal.Decimal, error)

	// TotalValue suma available_qty * unit_cost sobre todos los lotes,
	// o solo sobre los de itemIDs si la lista no está vacía.
	TotalValue(ctx context.Context, itemIDs []string) (decimal.Decimal, error)

	// ListByItem lista los lotes del artículo ordenados por fecha de compra.
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockBatch, error)
}
