package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// StatementRequest parámetros para GET /api/reports/profit-loss.
// Ambas fechas son obligatorias (YYYY-MM-DD, rango inclusivo).
type StatementRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// CompareRequest parámetros para GET /api/reports/profit-loss/compare.
type CompareRequest struct {
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
	PrevStartDate string `query:"prev_start_date"`
	PrevEndDate   string `query:"prev_end_date"`
}

// ── Estado de resultados ──────────────────────────────────────────────────────

// PeriodDTO rango de fechas del reporte con el conteo de días inclusivo.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

// RevenueDTO ingresos del período.
type RevenueDTO struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"` // ventas no devueltas en el período
}

// AmountMarginDTO monto con su margen como % del ingreso.
type AmountMarginDTO struct {
	Amount    decimal.Decimal `json:"amount"`
	MarginPct decimal.Decimal `json:"margin_pct"`
}

// ExpenseCategoryDTO total de gastos de una categoría.
type ExpenseCategoryDTO struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage_of_total"` // 0 si el total de gastos es 0
}

// OperatingExpensesDTO gastos operativos con desglose por categoría.
type OperatingExpensesDTO struct {
	Total     decimal.Decimal      `json:"total"`
	Breakdown []ExpenseCategoryDTO `json:"breakdown"`
}

// CostPrecisionDTO aviso de precisión: líneas de venta cuyo costo no pudo
// resolverse y contribuyeron cero al COGS. El operador distingue así
// "costo cero" de "costo desconocido".
type CostPrecisionDTO struct {
	UnresolvedLines int `json:"unresolved_lines"`
}

// PeriodStatementDTO respuesta completa de GET /api/reports/profit-loss.
type PeriodStatementDTO struct {
	Period            PeriodDTO            `json:"period"`
	Revenue           RevenueDTO           `json:"revenue"`
	COGS              decimal.Decimal      `json:"cogs"`
	GrossProfit       AmountMarginDTO      `json:"gross_profit"`
	OperatingExpenses OperatingExpensesDTO `json:"operating_expenses"`
	NetIncome         AmountMarginDTO      `json:"net_income"`
	CostPrecision     CostPrecisionDTO     `json:"cost_precision"`
}

// ── Comparación entre períodos ────────────────────────────────────────────────

// StatementSummaryDTO versión ligera del estado (sin desglose por categoría).
type StatementSummaryDTO struct {
	Period      PeriodDTO       `json:"period"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"operating_expenses"`
	NetIncome   decimal.Decimal `json:"net_income"`
}

// ChangesDTO variación porcentual de cada métrica entre períodos.
// Base cero: 100 si el actual es positivo, 0 si siguió en cero.
type ChangesDTO struct {
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"operating_expenses"`
	NetIncome   decimal.Decimal `json:"net_income"`
}

// ComparisonDTO respuesta de GET /api/reports/profit-loss/compare.
type ComparisonDTO struct {
	Current  StatementSummaryDTO `json:"current"`
	Previous StatementSummaryDTO `json:"previous"`
	Changes  ChangesDTO          `json:"changes"`
}
