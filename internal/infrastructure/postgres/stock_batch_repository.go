package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

const batchColumns = `
	id, item_id, batch_number, purchase_id,
	purchase_qty, available_qty, sold_qty, before_purchase_available_qty,
	unit_cost, selling_price, purchase_date, expiry_date,
	created_at, updated_at`

// StockBatchRepo implementación de StockBatchRepository sobre PostgreSQL
// (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create inserta el lote. La constraint UNIQUE(item_id, batch_number) se
// traduce a ErrDuplicateBatch.
func (r *StockBatchRepo) Create(ctx context.Context, b *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (` + batchColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ItemID, b.BatchNumber, b.PurchaseID,
		b.PurchaseQty, b.AvailableQty, b.SoldQty, b.BeforePurchaseAvailableQty,
		b.UnitCost, b.SellingPrice, b.PurchaseDate, b.ExpiryDate,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBatch
		}
		return fmt.Errorf("create stock batch: %w", err)
	}
	return nil
}

// Get obtiene el lote por (item, número de lote) o nil si no existe.
func (r *StockBatchRepo) Get(ctx context.Context, itemID, batchNumber string) (*entity.StockBatch, error) {
	query := `SELECT` + batchColumns + `
		FROM stock_batches WHERE item_id = $1 AND batch_number = $2`
	return r.scanOne(ctx, query, itemID, batchNumber)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *StockBatchRepo) GetForUpdate(ctx context.Context, itemID, batchNumber string) (*entity.StockBatch, error) {
	query := `SELECT` + batchColumns + `
		FROM stock_batches WHERE item_id = $1 AND batch_number = $2
		FOR UPDATE`
	return r.scanOne(ctx, query, itemID, batchNumber)
}

func (r *StockBatchRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.StockBatch, error) {
	var b entity.StockBatch
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.ItemID, &b.BatchNumber, &b.PurchaseID,
		&b.PurchaseQty, &b.AvailableQty, &b.SoldQty, &b.BeforePurchaseAvailableQty,
		&b.UnitCost, &b.SellingPrice, &b.PurchaseDate, &b.ExpiryDate,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	return &b, nil
}

// UpdateQuantities persiste las cantidades mutables del lote. Los campos de
// identidad, costo y auditoría son inmutables y no se tocan.
func (r *StockBatchRepo) UpdateQuantities(ctx context.Context, b *entity.StockBatch) error {
	query := `
		UPDATE stock_batches
		SET available_qty = $3, sold_qty = $4, updated_at = $5
		WHERE item_id = $1 AND batch_number = $2`
	tag, err := r.q.Exec(ctx, query, b.ItemID, b.BatchNumber, b.AvailableQty, b.SoldQty, b.UpdatedAt)
	if err != nil {
		// Última línea de defensa: el CHECK available_qty >= 0 de la tabla
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock batch quantities: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumAvailableByItem suma el disponible de todos los lotes del artículo.
// COALESCE devuelve cero si el artículo aún no tiene lotes.
func (r *StockBatchRepo) SumAvailableByItem(ctx context.Context, itemID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(available_qty), 0)
		FROM stock_batches WHERE item_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, itemID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum available by item: %w", err)
	}
	return sum, nil
}

// TotalValue valoración del inventario al costo, con filtro opcional de artículos.
func (r *StockBatchRepo) TotalValue(ctx context.Context, itemIDs []string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(available_qty * unit_cost), 0)
		FROM stock_batches`
	args := []any{}
	if len(itemIDs) > 0 {
		query += ` WHERE item_id = ANY($1)`
		args = append(args, itemIDs)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total stock value: %w", err)
	}
	return total, nil
}

// ListByItem lista los lotes del artículo, los más antiguos primero.
func (r *StockBatchRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockBatch, error) {
	query := `SELECT` + batchColumns + `
		FROM stock_batches WHERE item_id = $1
		ORDER BY purchase_date, batch_number`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list batches by item: %w", err)
	}
	defer rows.Close()

	var batches []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.BatchNumber, &b.PurchaseID,
			&b.PurchaseQty, &b.AvailableQty, &b.SoldQty, &b.BeforePurchaseAvailableQty,
			&b.UnitCost, &b.SellingPrice, &b.PurchaseDate, &b.ExpiryDate,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list batches scan: %w", err)
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}
