package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo lectura de gastos operativos para el agregador.
type ExpenseRepo struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository construye el adaptador de gastos.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepo {
	return &ExpenseRepo{pool: pool}
}

// TotalsByCategory agrupa los gastos del período por categoría. El orden
// final (total desc, categoría asc) lo garantiza el agregador en memoria;
// la consulta ya lo emite ordenado para el caso común.
func (r *ExpenseRepo) TotalsByCategory(ctx context.Context, companyID string, start, end time.Time) ([]repository.CategoryTotal, error) {
	const query = `
		SELECT category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS cnt
		FROM expenses
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		GROUP BY category
		ORDER BY total DESC, category ASC`

	rows, err := r.pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("expenses.TotalsByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryTotal
	for rows.Next() {
		var row repository.CategoryTotal
		if err := rows.Scan(&row.Category, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("expenses.TotalsByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
