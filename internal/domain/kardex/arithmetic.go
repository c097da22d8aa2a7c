// Package kardex contiene la aritmética pura del motor de costeo y P&G
// (servicios de dominio, sin dependencias de infraestructura).
package kardex

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MarginPct calcula el margen como porcentaje del ingreso:
// (ingreso - costo) / ingreso * 100. Con ingreso cero devuelve cero,
// nunca NaN ni división por cero.
func MarginPct(revenue, cost decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(revenue).Mul(hundred).Round(2)
}

// PctOf calcula part / total * 100 con protección contra total cero.
func PctOf(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// PercentChange calcula la variación porcentual entre períodos.
// Con base cero: 100 si el actual es positivo ("de nada a algo" cuenta como
// incremento a escala completa), 0 si siguió en cero.
// Con base distinta de cero: (curr - prev) / |prev| * 100.
func PercentChange(curr, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		if curr.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return curr.Sub(prev).Div(prev.Abs()).Mul(hundred).Round(2)
}

// PeriodDays devuelve el número de días calendario del rango inclusivo
// [start, end]: end - start + 1 día. Normaliza la hora antes de restar para
// que un rango de un solo día devuelva 1.
func PeriodDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	return int(e.Sub(s).Hours()/24) + 1
}
