// Package reporting contiene los agregadores de ventas y gastos y el
// compositor del estado de resultados (P&G) por período.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/costing"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// SalesTotals ingresos y COGS de una empresa en un período.
type SalesTotals struct {
	Revenue         decimal.Decimal
	SalesCount      int
	COGS            decimal.Decimal
	UnresolvedLines int // líneas con datos de costo faltantes (precisión degradada)
}

// SalesAggregator calcula ingresos y COGS sobre ventas confirmadas.
//
// Los dos predicados de exclusión son estados de negocio distintos y se
// aplican por separado, nunca conflated:
//   - ingreso: excluye ventas DEVUELTAS (return_invoice_status = returned)
//   - COGS:    excluye ventas REVERSADAS (status = Reversed)
type SalesAggregator struct {
	salesRepo repository.SalesRepository
	resolver  *costing.Resolver
}

// NewSalesAggregator construye el agregador.
func NewSalesAggregator(salesRepo repository.SalesRepository, resolver *costing.Resolver) *SalesAggregator {
	return &SalesAggregator{salesRepo: salesRepo, resolver: resolver}
}

// Totals agrega ingresos, conteo de ventas y COGS del rango inclusivo [start, end].
// El COGS se calcula expandiendo cada línea por el resolver de costos; una
// línea irresoluble suma cero y cuenta en UnresolvedLines, sin abortar el reporte.
func (a *SalesAggregator) Totals(ctx context.Context, companyID string, start, end time.Time) (SalesTotals, error) {
	sales, err := a.salesRepo.ListInPeriod(ctx, companyID, start, end)
	if err != nil {
		return SalesTotals{}, fmt.Errorf("reporting: ventas del período: %w", err)
	}

	totals := SalesTotals{Revenue: decimal.Zero, COGS: decimal.Zero}
	for _, sale := range sales {
		if !sale.IsReturned() {
			totals.Revenue = totals.Revenue.Add(sale.TotalAmount)
			totals.SalesCount++
		}
		if sale.IsReversed() {
			continue
		}
		res, err := a.resolver.ResolveLines(ctx, sale.Lines)
		if err != nil {
			return SalesTotals{}, err
		}
		totals.COGS = totals.COGS.Add(res.TotalCost)
		totals.UnresolvedLines += res.FlaggedLines
	}
	return totals, nil
}
