// Package pdf implementa la representación imprimible del estado de
// resultados del período.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Período (fechas + días)                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INGRESOS: total + n° de ventas                             │
//	│  COGS                                                       │
//	│  UTILIDAD BRUTA + margen %                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GASTOS OPERATIVOS: tabla categoría | total | % del total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UTILIDAD NETA + margen %                                   │
//	│  Nota de precisión (líneas sin costo resoluble)             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa reporting.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	companyName string,
	st *dto.PeriodStatementDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Resultados", true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Bloque de ingresos y utilidad bruta
	m.AddRows(metricRow("Ingresos",
		fmt.Sprintf("$%s  (%d ventas)", formatMoney(st.Revenue.Total.StringFixed(0)), st.Revenue.Count), false))
	m.AddRows(metricRow("Costo de ventas (COGS)",
		"$"+formatMoney(st.COGS.StringFixed(0)), false))
	m.AddRows(metricRow(
		fmt.Sprintf("Utilidad bruta  (margen %s%%)", st.GrossProfit.MarginPct.StringFixed(2)),
		"$"+formatMoney(st.GrossProfit.Amount.StringFixed(0)), true))

	// Gastos operativos
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(expenseHeaderRow(st.OperatingExpenses.Total))
	for _, r := range expenseRows(st.OperatingExpenses.Breakdown) {
		m.AddRows(r)
	}

	// Utilidad neta
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(metricRow(
		fmt.Sprintf("UTILIDAD NETA  (margen %s%%)", st.NetIncome.MarginPct.StringFixed(2)),
		"$"+formatMoney(st.NetIncome.Amount.StringFixed(0)), true))

	// Nota de precisión del costeo
	if st.CostPrecision.UnresolvedLines > 0 {
		m.AddRows(precisionNoteRow(st.CostPrecision.UnresolvedLines))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y período con conteo de días (der).
func headerRow(companyName string, st *dto.PeriodStatementDTO) core.Row {
	periodo := fmt.Sprintf("%s — %s", st.Period.StartDate, st.Period.EndDate)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado de Resultados", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("%d días", st.Period.Days), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// metricRow: etiqueta a la izquierda, monto a la derecha. destacado resalta
// las utilidades.
func metricRow(label, amount string, destacado bool) core.Row {
	size := 9.0
	color := colorGray
	style := fontstyle.Normal
	if destacado {
		size = 11
		color = colorPrimary
		style = fontstyle.Bold
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: style, Size: size, Top: 1, Left: 1, Color: color,
		})),
		col.New(4).Add(text.New(amount, props.Text{
			Style: style, Size: size, Align: align.Right, Top: 1, Right: 1, Color: color,
		})),
	)
}

// expenseHeaderRow: título del bloque de gastos con su total.
func expenseHeaderRow(total decimal.Decimal) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("GASTOS OPERATIVOS", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1, Left: 1,
		})),
		col.New(4).Add(text.New("$"+formatMoney(total.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1,
			Color: colorPrimary,
		})),
	)
}

// expenseRows: una fila por categoría, en el mismo orden del reporte
// (total descendente, empate por nombre).
func expenseRows(breakdown []dto.ExpenseCategoryDTO) []core.Row {
	result := make([]core.Row, 0, len(breakdown))
	for _, cat := range breakdown {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(cat.Category, props.Text{
				Size: 8, Top: 1, Left: 3,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d gastos", cat.Count), props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New(cat.Percentage.StringFixed(2)+"%", props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New("$"+formatMoney(cat.Total.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// precisionNoteRow: advierte cuántas líneas de venta contribuyeron cero al
// COGS por no tener costo resoluble.
func precisionNoteRow(unresolved int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Nota: %d línea(s) de venta sin costo resoluble contribuyeron $0 al costo de ventas. "+
				"El COGS del período puede estar subestimado.", unresolved),
			props.Text{Size: 7, Color: colorRed, Top: 2, Left: 1},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	negative := false
	if len(s) > 0 && s[0] == '-' {
		negative = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if negative {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if negative {
		return "-" + string(buf)
	}
	return string(buf)
}
