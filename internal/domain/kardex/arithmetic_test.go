package kardex_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Kardex-api/internal/domain/kardex"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// MarginPct — margen como % del ingreso, nunca NaN
// ──────────────────────────────────────────────────────────────────────────────

func TestMarginPct_CasoNormal(t *testing.T) {
	// ingreso 32, costo 20 → utilidad 12 → margen 37.50%
	got := kardex.MarginPct(dec("32"), dec("20"))
	assert.True(t, dec("37.5").Equal(got),
		"margen de ingreso 32 y costo 20 debe ser 37.50, fue %s", got)
}

func TestMarginPct_IngresoCero_DevuelveCero(t *testing.T) {
	got := kardex.MarginPct(decimal.Zero, dec("20"))
	assert.True(t, got.IsZero(),
		"con ingreso cero el margen debe ser 0, nunca división por cero")
}

func TestMarginPct_CostoMayorQueIngreso_EsNegativo(t *testing.T) {
	got := kardex.MarginPct(dec("100"), dec("150"))
	assert.True(t, dec("-50").Equal(got),
		"vender por debajo del costo produce margen negativo, fue %s", got)
}

// ──────────────────────────────────────────────────────────────────────────────
// PctOf — participación sobre un total con guardia de cero
// ──────────────────────────────────────────────────────────────────────────────

func TestPctOf_CasoNormal(t *testing.T) {
	got := kardex.PctOf(dec("25"), dec("100"))
	assert.True(t, dec("25").Equal(got))
}

func TestPctOf_TotalCero_DevuelveCero(t *testing.T) {
	got := kardex.PctOf(dec("25"), decimal.Zero)
	assert.True(t, got.IsZero(),
		"con total cero el porcentaje debe ser 0, nunca NaN")
}

// ──────────────────────────────────────────────────────────────────────────────
// PercentChange — variación entre períodos con reglas de base cero
// ──────────────────────────────────────────────────────────────────────────────

func TestPercentChange_Grid(t *testing.T) {
	cases := []struct {
		name       string
		curr, prev string
		want       string
	}{
		{"incremento normal", "150", "100", "50"},
		{"caída normal", "50", "100", "-50"},
		{"sin cambio", "100", "100", "0"},
		{"de cero a algo: 100", "50", "0", "100"},
		{"cero a cero: 0", "0", "0", "0"},
		{"de cero a negativo: 0", "-10", "0", "0"},
		{"base negativa usa valor absoluto", "-50", "-100", "50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := kardex.PercentChange(dec(tc.curr), dec(tc.prev))
			assert.True(t, dec(tc.want).Equal(got),
				"PercentChange(%s, %s) debe ser %s, fue %s", tc.curr, tc.prev, tc.want, got)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PeriodDays — conteo inclusivo de días calendario
// ──────────────────────────────────────────────────────────────────────────────

func TestPeriodDays_UnSoloDia(t *testing.T) {
	d := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, kardex.PeriodDays(d, d),
		"un rango de un solo día cuenta como 1")
}

func TestPeriodDays_MesCompleto(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, kardex.PeriodDays(start, end))
}

func TestPeriodDays_IgnoraLaHora(t *testing.T) {
	// El fin del rango se extiende a las 23:59:59; el conteo no debe cambiar.
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 7, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, 7, kardex.PeriodDays(start, end))
}
