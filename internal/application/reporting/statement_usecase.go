package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/kardex"
)

const dateLayout = "2006-01-02"

// StatementUseCase compone el estado de resultados del período y la
// comparación entre períodos a partir de los dos agregadores.
type StatementUseCase struct {
	sales    *SalesAggregator
	expenses *ExpenseAggregator
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(sales *SalesAggregator, expenses *ExpenseAggregator) *StatementUseCase {
	return &StatementUseCase{sales: sales, expenses: expenses}
}

// ParsePeriod valida y convierte el rango de fechas del reporte. A diferencia
// de un dashboard con valores por defecto, aquí ambas fechas son obligatorias:
// faltar una o invertir el rango devuelve ErrInvalidRange.
// El fin del rango se extiende al último instante del día (rango inclusivo).
func ParsePeriod(startStr, endStr string) (start, end time.Time, err error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date y end_date son obligatorios", domain.ErrInvalidRange)
	}
	loc := time.Now().Location()
	start, err = time.ParseInLocation(dateLayout, startStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date inválido", domain.ErrInvalidRange)
	}
	end, err = time.ParseInLocation(dateLayout, endStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date inválido", domain.ErrInvalidRange)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidRange)
	}
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second) // inclusive hasta el final del día
	return start, end, nil
}

// BuildStatement arma el estado de resultados completo del rango [start, end]:
//
//  1. ingresos y COGS ← agregador de ventas
//  2. utilidad bruta = ingresos - COGS; margen bruto con guardia de ingreso cero
//  3. desglose de gastos ← agregador de gastos
//  4. utilidad neta = utilidad bruta - gastos operativos
//
// Las dos consultas son independientes y corren en paralelo.
func (uc *StatementUseCase) BuildStatement(ctx context.Context, companyID string, start, end time.Time) (*dto.PeriodStatementDTO, error) {
	type salesResult struct {
		totals SalesTotals
		err    error
	}
	type expenseResult struct {
		total     decimal.Decimal
		breakdown []dto.ExpenseCategoryDTO
		err       error
	}

	salesCh := make(chan salesResult, 1)
	expenseCh := make(chan expenseResult, 1)

	go func() {
		totals, err := uc.sales.Totals(ctx, companyID, start, end)
		salesCh <- salesResult{totals, err}
	}()
	go func() {
		total, breakdown, err := uc.expenses.Breakdown(ctx, companyID, start, end)
		expenseCh <- expenseResult{total, breakdown, err}
	}()

	sales := <-salesCh
	expenses := <-expenseCh

	if sales.err != nil {
		return nil, sales.err
	}
	if expenses.err != nil {
		return nil, expenses.err
	}

	revenue := sales.totals.Revenue
	cogs := sales.totals.COGS
	grossProfit := revenue.Sub(cogs)
	netIncome := grossProfit.Sub(expenses.total)

	return &dto.PeriodStatementDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format(dateLayout),
			EndDate:   end.Format(dateLayout),
			Days:      kardex.PeriodDays(start, end),
		},
		Revenue: dto.RevenueDTO{Total: revenue.Round(2), Count: sales.totals.SalesCount},
		COGS:    cogs.Round(2),
		GrossProfit: dto.AmountMarginDTO{
			Amount:    grossProfit.Round(2),
			MarginPct: kardex.MarginPct(revenue, cogs),
		},
		OperatingExpenses: dto.OperatingExpensesDTO{
			Total:     expenses.total,
			Breakdown: expenses.breakdown,
		},
		NetIncome: dto.AmountMarginDTO{
			Amount:    netIncome.Round(2),
			MarginPct: kardex.PctOf(netIncome, revenue),
		},
		CostPrecision: dto.CostPrecisionDTO{UnresolvedLines: sales.totals.UnresolvedLines},
	}, nil
}

// Compare arma dos resúmenes ligeros (sin desglose por categoría) y calcula la
// variación porcentual de cada métrica. Los dos períodos se consultan en paralelo.
func (uc *StatementUseCase) Compare(ctx context.Context, companyID string, currStart, currEnd, prevStart, prevEnd time.Time) (*dto.ComparisonDTO, error) {
	type summaryResult struct {
		summary dto.StatementSummaryDTO
		err     error
	}

	currCh := make(chan summaryResult, 1)
	prevCh := make(chan summaryResult, 1)

	go func() {
		s, err := uc.buildSummary(ctx, companyID, currStart, currEnd)
		currCh <- summaryResult{s, err}
	}()
	go func() {
		s, err := uc.buildSummary(ctx, companyID, prevStart, prevEnd)
		prevCh <- summaryResult{s, err}
	}()

	curr := <-currCh
	prev := <-prevCh

	if curr.err != nil {
		return nil, fmt.Errorf("reporting: período actual: %w", curr.err)
	}
	if prev.err != nil {
		return nil, fmt.Errorf("reporting: período anterior: %w", prev.err)
	}

	return &dto.ComparisonDTO{
		Current:  curr.summary,
		Previous: prev.summary,
		Changes: dto.ChangesDTO{
			Revenue:     kardex.PercentChange(curr.summary.Revenue, prev.summary.Revenue),
			COGS:        kardex.PercentChange(curr.summary.COGS, prev.summary.COGS),
			GrossProfit: kardex.PercentChange(curr.summary.GrossProfit, prev.summary.GrossProfit),
			Expenses:    kardex.PercentChange(curr.summary.Expenses, prev.summary.Expenses),
			NetIncome:   kardex.PercentChange(curr.summary.NetIncome, prev.summary.NetIncome),
		},
	}, nil
}

// buildSummary calcula las cinco métricas de un período sin el desglose de
// categorías (la comparación no lo necesita).
func (uc *StatementUseCase) buildSummary(ctx context.Context, companyID string, start, end time.Time) (dto.StatementSummaryDTO, error) {
	totals, err := uc.sales.Totals(ctx, companyID, start, end)
	if err != nil {
		return dto.StatementSummaryDTO{}, err
	}
	expenseTotal, _, err := uc.expenses.Breakdown(ctx, companyID, start, end)
	if err != nil {
		return dto.StatementSummaryDTO{}, err
	}
	grossProfit := totals.Revenue.Sub(totals.COGS)
	return dto.StatementSummaryDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format(dateLayout),
			EndDate:   end.Format(dateLayout),
			Days:      kardex.PeriodDays(start, end),
		},
		Revenue:     totals.Revenue.Round(2),
		COGS:        totals.COGS.Round(2),
		GrossProfit: grossProfit.Round(2),
		Expenses:    expenseTotal,
		NetIncome:   grossProfit.Sub(expenseTotal).Round(2),
	}, nil
}
