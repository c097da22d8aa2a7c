package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal resultado crudo de la agregación de gastos por categoría.
// Lo produce la DB; el agregador calcula porcentajes y ordena.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// ExpenseRepository define el puerto de lectura sobre gastos operativos.
type ExpenseRepository interface {
	// TotalsByCategory suma los gastos de la empresa por categoría dentro del
	// rango inclusivo [start, end].
	TotalsByCategory(ctx context.Context, companyID string, start, end time.Time) ([]CategoryTotal, error)
}
