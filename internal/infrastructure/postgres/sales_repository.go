package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo lectura de ventas confirmadas para los agregadores. Solo lectura:
// el subsistema de ventas escribe la venta y sus líneas en una transacción,
// así que esta consulta nunca ve líneas parciales.
type SalesRepo struct {
	pool *pgxpool.Pool
}

// NewSalesRepository construye el adaptador de ventas.
func NewSalesRepository(pool *pgxpool.Pool) *SalesRepo {
	return &SalesRepo{pool: pool}
}

// ListInPeriod devuelve las ventas de la empresa en el rango inclusivo, con
// sus líneas cargadas en una segunda consulta (dos round-trips, sin N+1).
func (r *SalesRepo) ListInPeriod(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Sale, error) {
	const salesQuery = `
		SELECT id, company_id, total_amount, status, return_invoice_status, created_at
		FROM sales
		WHERE company_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, salesQuery, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales.ListInPeriod: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	byID := map[string]*entity.Sale{}
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.TotalAmount, &s.Status, &s.ReturnInvoiceStatus, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("sales.ListInPeriod scan: %w", err)
		}
		sales = append(sales, &s)
		byID[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.ListInPeriod rows: %w", err)
	}
	if len(sales) == 0 {
		return sales, nil
	}

	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}

	const linesQuery = `
		SELECT id, sale_id, item_id, quantity, is_serialized, serial_numbers,
		       batch_number, unit_price, discount
		FROM sale_line_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, id`

	lineRows, err := r.pool.Query(ctx, linesQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("sales.ListInPeriod líneas: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l entity.SaleLineItem
		if err := lineRows.Scan(
			&l.ID, &l.SaleID, &l.ItemID, &l.Quantity, &l.IsSerialized, &l.SerialNumbers,
			&l.BatchNumber, &l.UnitPrice, &l.Discount,
		); err != nil {
			return nil, fmt.Errorf("sales.ListInPeriod líneas scan: %w", err)
		}
		if sale, ok := byID[l.SaleID]; ok {
			sale.Lines = append(sale.Lines, l)
		}
	}
	return sales, lineRows.Err()
}
