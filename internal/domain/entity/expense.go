package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord es un gasto operativo. Entrada de solo lectura para el
// agregador de gastos; el CRUD de gastos vive fuera de este motor.
type ExpenseRecord struct {
	ID        string
	CompanyID string
	Category  string
	Amount    decimal.Decimal // >= 0
	Date      time.Time
	CreatedAt time.Time
}
