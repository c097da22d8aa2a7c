package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `
	id, item_id, batch_number, serial_number, type, quantity, unit_cost,
	reason, reference, created_by, created_at`

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el movimiento de auditoría.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.BatchNumber, m.SerialNumber, m.Type, m.Quantity, m.UnitCost,
		m.Reason, m.Reference, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByReference busca por llave de idempotencia y tipo. Nil si no existe.
func (r *StockMovementRepo) GetByReference(ctx context.Context, reference, movementType string) (*entity.StockMovement, error) {
	if reference == "" {
		return nil, nil
	}
	query := `SELECT` + movementColumns + `
		FROM stock_movements WHERE reference = $1 AND type = $2
		LIMIT 1`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, reference, movementType).Scan(
		&m.ID, &m.ItemID, &m.BatchNumber, &m.SerialNumber, &m.Type, &m.Quantity, &m.UnitCost,
		&m.Reason, &m.Reference, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement by reference: %w", err)
	}
	return &m, nil
}

// ListByItem lista los movimientos del artículo, los más recientes primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT` + movementColumns + `
		FROM stock_movements
		WHERE item_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, itemID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.BatchNumber, &m.SerialNumber, &m.Type, &m.Quantity, &m.UnitCost,
			&m.Reason, &m.Reference, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list movements scan: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
