package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/kardex"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ExpenseAggregator suma gastos operativos por categoría en un período.
type ExpenseAggregator struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseAggregator construye el agregador.
func NewExpenseAggregator(expenseRepo repository.ExpenseRepository) *ExpenseAggregator {
	return &ExpenseAggregator{expenseRepo: expenseRepo}
}

// Breakdown devuelve el total de gastos y el desglose por categoría, ordenado
// por total descendente con desempate por nombre de categoría ascendente
// (orden determinista). El porcentaje por categoría es 0 cuando el total es
// cero, nunca NaN.
func (a *ExpenseAggregator) Breakdown(ctx context.Context, companyID string, start, end time.Time) (decimal.Decimal, []dto.ExpenseCategoryDTO, error) {
	rows, err := a.expenseRepo.TotalsByCategory(ctx, companyID, start, end)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("reporting: gastos del período: %w", err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})

	breakdown := make([]dto.ExpenseCategoryDTO, 0, len(rows))
	for _, r := range rows {
		breakdown = append(breakdown, dto.ExpenseCategoryDTO{
			Category:   r.Category,
			Total:      r.Total.Round(2),
			Count:      r.Count,
			Percentage: kardex.PctOf(r.Total, total),
		})
	}
	return total.Round(2), breakdown, nil
}
