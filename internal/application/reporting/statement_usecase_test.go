package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/costing"
	"github.com/jhoicas/Kardex-api/internal/application/reporting"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de lectura
// ──────────────────────────────────────────────────────────────────────────────

type stubSalesRepo struct {
	sales []*entity.Sale
}

func (r *stubSalesRepo) ListInPeriod(_ context.Context, companyID string, start, end time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CompanyID != companyID {
			continue
		}
		if s.CreatedAt.Before(start) || s.CreatedAt.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type stubExpenseRepo struct {
	rows []repository.CategoryTotal
}

func (r *stubExpenseRepo) TotalsByCategory(context.Context, string, time.Time, time.Time) ([]repository.CategoryTotal, error) {
	return r.rows, nil
}

type stubSerialCostRepo struct {
	units map[string]*entity.SerializedUnit
}

func (r *stubSerialCostRepo) Create(context.Context, *entity.SerializedUnit) error { return nil }
func (r *stubSerialCostRepo) Get(_ context.Context, sn string) (*entity.SerializedUnit, error) {
	return r.units[sn], nil
}
func (r *stubSerialCostRepo) GetForUpdate(ctx context.Context, sn string) (*entity.SerializedUnit, error) {
	return r.Get(ctx, sn)
}
func (r *stubSerialCostRepo) MarkSold(context.Context, *entity.SerializedUnit) error { return nil }
func (r *stubSerialCostRepo) GetMany(_ context.Context, sns []string) (map[string]*entity.SerializedUnit, error) {
	out := make(map[string]*entity.SerializedUnit)
	for _, sn := range sns {
		if u, ok := r.units[sn]; ok {
			out[sn] = u
		}
	}
	return out, nil
}

type stubBatchCostRepo struct {
	batches map[string]*entity.StockBatch
}

func (r *stubBatchCostRepo) Create(context.Context, *entity.StockBatch) error { return nil }
func (r *stubBatchCostRepo) Get(_ context.Context, itemID, batchNumber string) (*entity.StockBatch, error) {
	return r.batches[itemID+"|"+batchNumber], nil
}
func (r *stubBatchCostRepo) GetForUpdate(ctx context.Context, itemID, batchNumber string) (*entity.StockBatch, error) {
	return r.Get(ctx, itemID, batchNumber)
}
func (r *stubBatchCostRepo) UpdateQuantities(context.Context, *entity.StockBatch) error { return nil }
func (r *stubBatchCostRepo) SumAvailableByItem(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *stubBatchCostRepo) TotalValue(context.Context, []string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *stubBatchCostRepo) ListByItem(context.Context, string) ([]*entity.StockBatch, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "company-001"

var (
	periodStart = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
	inPeriod    = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
)

// saleOf arma una venta con una línea de lote (item-1/L-001, costo 20/u).
func saleOf(id string, amount, qty int64, status, returnStatus string) *entity.Sale {
	return &entity.Sale{
		ID:                  id,
		CompanyID:           testCompanyID,
		TotalAmount:         decimal.NewFromInt(amount),
		Status:              status,
		ReturnInvoiceStatus: returnStatus,
		CreatedAt:           inPeriod,
		Lines: []entity.SaleLineItem{{
			ItemID:      "item-1",
			BatchNumber: "L-001",
			Quantity:    decimal.NewFromInt(qty),
		}},
	}
}

func newStatementUC(sales []*entity.Sale, expenses []repository.CategoryTotal) *reporting.StatementUseCase {
	batchRepo := &stubBatchCostRepo{batches: map[string]*entity.StockBatch{
		"item-1|L-001": {ItemID: "item-1", BatchNumber: "L-001", UnitCost: decimal.NewFromInt(20)},
	}}
	serialRepo := &stubSerialCostRepo{units: map[string]*entity.SerializedUnit{
		"S-10": {SerialNumber: "S-10", UnitCost: decimal.NewFromInt(10)},
		"S-12": {SerialNumber: "S-12", UnitCost: decimal.NewFromInt(12)},
	}}
	resolver := costing.NewResolver(batchRepo, serialRepo)
	salesAgg := reporting.NewSalesAggregator(&stubSalesRepo{sales: sales}, resolver)
	expenseAgg := reporting.NewExpenseAggregator(&stubExpenseRepo{rows: expenses})
	return reporting.NewStatementUseCase(salesAgg, expenseAgg)
}

// ──────────────────────────────────────────────────────────────────────────────
// ParsePeriod — ambas fechas obligatorias, rango inclusivo
// ──────────────────────────────────────────────────────────────────────────────

func TestParsePeriod_FechasFaltantes_Rechaza(t *testing.T) {
	cases := []struct{ name, start, end string }{
		{"ambas vacías", "", ""},
		{"falta inicio", "", "2026-06-30"},
		{"falta fin", "2026-06-01", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := reporting.ParsePeriod(tc.start, tc.end)
			assert.ErrorIs(t, err, domain.ErrInvalidRange,
				"no hay período por defecto: deben venir ambas fechas")
		})
	}
}

func TestParsePeriod_RangoInvertido_Rechaza(t *testing.T) {
	_, _, err := reporting.ParsePeriod("2026-06-30", "2026-06-01")
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestParsePeriod_FormatoInvalido_Rechaza(t *testing.T) {
	_, _, err := reporting.ParsePeriod("01/06/2026", "2026-06-30")
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestParsePeriod_ExtiendeElFinDeDia(t *testing.T) {
	start, end, err := reporting.ParsePeriod("2026-06-01", "2026-06-30")
	require.NoError(t, err)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 23, end.Hour(), "el fin del rango abarca todo el último día")
	assert.Equal(t, 59, end.Minute())
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildStatement — composición del estado de resultados
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildStatement_EndToEnd(t *testing.T) {
	// Una venta de 32 con 1 unidad de lote (costo 20):
	// utilidad bruta 12, margen 37.50%; gasto 5 → neta 7.
	uc := newStatementUC(
		[]*entity.Sale{saleOf("v1", 32, 1, entity.SaleStatusCompleted, entity.ReturnStatusNone)},
		[]repository.CategoryTotal{{Category: "arriendo", Total: decimal.NewFromInt(5), Count: 1}},
	)

	st, err := uc.BuildStatement(context.Background(), testCompanyID, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(32).Equal(st.Revenue.Total))
	assert.Equal(t, 1, st.Revenue.Count)
	assert.True(t, decimal.NewFromInt(20).Equal(st.COGS))
	assert.True(t, decimal.NewFromInt(12).Equal(st.GrossProfit.Amount))
	wantMargin, _ := decimal.NewFromString("37.5")
	assert.True(t, wantMargin.Equal(st.GrossProfit.MarginPct),
		"margen bruto debe ser 37.50, fue %s", st.GrossProfit.MarginPct)
	assert.True(t, decimal.NewFromInt(5).Equal(st.OperatingExpenses.Total))
	assert.True(t, decimal.NewFromInt(7).Equal(st.NetIncome.Amount))
	assert.Equal(t, 30, st.Period.Days)
	assert.Equal(t, 0, st.CostPrecision.UnresolvedLines)
}

// TestBuildStatement_PredicadosIndependientes demuestra que devuelta y
// reversada son exclusiones distintas:
//   - la venta DEVUELTA sale del ingreso pero su costo sí cuenta en el COGS
//   - la venta REVERSADA cuenta en el ingreso pero su costo no entra al COGS
func TestBuildStatement_PredicadosIndependientes(t *testing.T) {
	uc := newStatementUC([]*entity.Sale{
		saleOf("normal", 100, 2, entity.SaleStatusCompleted, entity.ReturnStatusNone),  // ingreso 100, cogs 40
		saleOf("devuelta", 50, 1, entity.SaleStatusCompleted, entity.ReturnStatusReturned), // sin ingreso, cogs 20
		saleOf("reversada", 80, 3, entity.SaleStatusReversed, entity.ReturnStatusNone),  // ingreso 80, sin cogs
	}, nil)

	st, err := uc.BuildStatement(context.Background(), testCompanyID, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(180).Equal(st.Revenue.Total),
		"ingreso = 100 + 80 (la devuelta queda fuera), fue %s", st.Revenue.Total)
	assert.Equal(t, 2, st.Revenue.Count, "la devuelta tampoco cuenta como venta")
	assert.True(t, decimal.NewFromInt(60).Equal(st.COGS),
		"COGS = 40 + 20 (la reversada queda fuera), fue %s", st.COGS)
}

func TestBuildStatement_SinVentas_MargenesCero(t *testing.T) {
	uc := newStatementUC(nil, []repository.CategoryTotal{
		{Category: "arriendo", Total: decimal.NewFromInt(10), Count: 1},
	})

	st, err := uc.BuildStatement(context.Background(), testCompanyID, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, st.Revenue.Total.IsZero())
	assert.True(t, st.GrossProfit.MarginPct.IsZero(),
		"con ingreso cero los márgenes deben ser 0, nunca NaN")
	assert.True(t, st.NetIncome.MarginPct.IsZero())
	assert.True(t, decimal.NewFromInt(-10).Equal(st.NetIncome.Amount),
		"la utilidad neta puede ser negativa aunque los márgenes sean 0")
}

func TestBuildStatement_LineaIrresoluble_CuentaEnPrecision(t *testing.T) {
	sale := saleOf("v1", 30, 1, entity.SaleStatusCompleted, entity.ReturnStatusNone)
	sale.Lines[0].BatchNumber = "lote-borrado"

	uc := newStatementUC([]*entity.Sale{sale}, nil)
	st, err := uc.BuildStatement(context.Background(), testCompanyID, periodStart, periodEnd)
	require.NoError(t, err, "una línea sin costo resoluble no aborta el reporte")

	assert.True(t, st.COGS.IsZero(), "la línea irresoluble contribuye cero")
	assert.Equal(t, 1, st.CostPrecision.UnresolvedLines)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compare — comparación entre períodos
// ──────────────────────────────────────────────────────────────────────────────

func TestCompare_CalculaVariaciones(t *testing.T) {
	// Ambos períodos comparten la lista de ventas del fixture; el filtro por
	// fecha decide qué ve cada uno.
	prevSale := saleOf("prev", 100, 2, entity.SaleStatusCompleted, entity.ReturnStatusNone)
	prevSale.CreatedAt = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	currSale := saleOf("curr", 150, 2, entity.SaleStatusCompleted, entity.ReturnStatusNone)

	uc := newStatementUC([]*entity.Sale{prevSale, currSale}, nil)

	prevStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	prevEnd := time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC)

	cmp, err := uc.Compare(context.Background(), testCompanyID,
		periodStart, periodEnd, prevStart, prevEnd)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(150).Equal(cmp.Current.Revenue))
	assert.True(t, decimal.NewFromInt(100).Equal(cmp.Previous.Revenue))
	assert.True(t, decimal.NewFromInt(50).Equal(cmp.Changes.Revenue),
		"de 100 a 150 es +50%%, fue %s", cmp.Changes.Revenue)
	assert.True(t, cmp.Changes.COGS.IsZero(),
		"mismo COGS (40) en ambos períodos: variación 0")
}

func TestCompare_BaseCero(t *testing.T) {
	// Período anterior sin ventas: "de nada a algo" reporta 100, y
	// "cero a cero" reporta 0.
	currSale := saleOf("curr", 150, 2, entity.SaleStatusCompleted, entity.ReturnStatusNone)
	uc := newStatementUC([]*entity.Sale{currSale}, nil)

	prevStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	prevEnd := time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC)

	cmp, err := uc.Compare(context.Background(), testCompanyID,
		periodStart, periodEnd, prevStart, prevEnd)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(100).Equal(cmp.Changes.Revenue),
		"base cero con actual positivo reporta 100, fue %s", cmp.Changes.Revenue)
	assert.True(t, cmp.Changes.Expenses.IsZero(),
		"gastos cero en ambos períodos reportan 0, no 100")
}

// ──────────────────────────────────────────────────────────────────────────────
// ExpenseAggregator — orden determinista y guardia de cero
// ──────────────────────────────────────────────────────────────────────────────

func TestExpenseBreakdown_OrdenDeterminista(t *testing.T) {
	agg := reporting.NewExpenseAggregator(&stubExpenseRepo{rows: []repository.CategoryTotal{
		{Category: "servicios", Total: decimal.NewFromInt(30), Count: 2},
		{Category: "arriendo", Total: decimal.NewFromInt(50), Count: 1},
		{Category: "aseo", Total: decimal.NewFromInt(30), Count: 3},
	}})

	total, breakdown, err := agg.Breakdown(context.Background(), testCompanyID, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(110).Equal(total))
	require.Len(t, breakdown, 3)
	// Total descendente; empate 30/30 resuelto por nombre ascendente
	assert.Equal(t, "arriendo", breakdown[0].Category)
	assert.Equal(t, "aseo", breakdown[1].Category)
	assert.Equal(t, "servicios", breakdown[2].Category)

	wantPct, _ := decimal.NewFromString("45.45")
	assert.True(t, wantPct.Equal(breakdown[0].Percentage),
		"50 de 110 es 45.45%%, fue %s", breakdown[0].Percentage)
}

func TestExpenseBreakdown_TotalCero_PorcentajesCero(t *testing.T) {
	agg := reporting.NewExpenseAggregator(&stubExpenseRepo{rows: []repository.CategoryTotal{
		{Category: "ajustes", Total: decimal.Zero, Count: 1},
	}})

	total, breakdown, err := agg.Breakdown(context.Background(), testCompanyID, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, total.IsZero())
	require.Len(t, breakdown, 1)
	assert.True(t, breakdown[0].Percentage.IsZero(),
		"con total cero el porcentaje es 0, nunca división por cero")
}
