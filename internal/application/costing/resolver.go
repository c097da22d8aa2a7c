// Package costing resuelve el costo histórico (COGS) de líneas de venta.
// Solo lectura: la mutación del kardex ya ocurrió en el momento de la venta,
// y el resolver puede correr sobre datos históricos para reportes.
package costing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LineCost es la contribución de una línea de venta al COGS.
// Flagged indica que algún dato de costo no pudo resolverse y la contribución
// de esa parte fue cero: el reporte degrada su precisión pero nunca aborta
// por un registro de auditoría faltante.
type LineCost struct {
	TotalCost decimal.Decimal
	Flagged   bool
}

// ResolveResult es el agregado de varias líneas.
type ResolveResult struct {
	TotalCost    decimal.Decimal
	FlaggedLines int
}

// Resolver calcula el costo de líneas de venta consultando el kardex por
// identidad (serial o lote), nunca por saldo remanente: el COGS refleja el
// costo al momento de la venta, que es inmutable por serial y por lote, y no
// debe verse afectado por ajustes posteriores de AvailableQty.
type Resolver struct {
	batchRepo  repository.StockBatchRepository
	serialRepo repository.SerializedUnitRepository
}

// NewResolver construye el resolver.
func NewResolver(batchRepo repository.StockBatchRepository, serialRepo repository.SerializedUnitRepository) *Resolver {
	return &Resolver{batchRepo: batchRepo, serialRepo: serialRepo}
}

// ResolveLine calcula la contribución al COGS de una línea según su origen de
// costo. El switch sobre la variante es exhaustivo: un origen desconocido se
// marca, no se pierde en silencio.
func (r *Resolver) ResolveLine(ctx context.Context, line entity.SaleLineItem) (LineCost, error) {
	switch src := line.CostSource().(type) {
	case entity.SerializedSource:
		return r.resolveSerialized(ctx, src)
	case entity.BatchedSource:
		return r.resolveBatched(ctx, src)
	default:
		return LineCost{TotalCost: decimal.Zero, Flagged: true}, nil
	}
}

// resolveSerialized suma el costo unitario de cada serial, sin importar si la
// unidad sigue disponible o ya está vendida: el costo es un hecho histórico.
// Un serial irresoluble contribuye cero y marca la línea.
func (r *Resolver) resolveSerialized(ctx context.Context, src entity.SerializedSource) (LineCost, error) {
	if len(src.Serials) == 0 {
		return LineCost{TotalCost: decimal.Zero, Flagged: true}, nil
	}
	units, err := r.serialRepo.GetMany(ctx, src.Serials)
	if err != nil {
		return LineCost{}, fmt.Errorf("costing: consultar seriales: %w", err)
	}
	total := decimal.Zero
	flagged := false
	for _, serial := range src.Serials {
		unit, ok := units[serial]
		if !ok {
			flagged = true
			continue
		}
		total = total.Add(unit.UnitCost)
	}
	return LineCost{TotalCost: total, Flagged: flagged}, nil
}

// resolveBatched busca el lote por (itemID, batchNumber) y multiplica su costo
// unitario por la cantidad capturada en la venta. No revalida la cantidad
// contra el disponible actual: el reporte confía en lo que la venta registró
// (esa verificación ocurrió en el consumo original).
func (r *Resolver) resolveBatched(ctx context.Context, src entity.BatchedSource) (LineCost, error) {
	batch, err := r.batchRepo.Get(ctx, src.ItemID, src.BatchNumber)
	if err != nil {
		return LineCost{}, fmt.Errorf("costing: consultar lote: %w", err)
	}
	if batch == nil {
		return LineCost{TotalCost: decimal.Zero, Flagged: true}, nil
	}
	return LineCost{TotalCost: batch.UnitCost.Mul(src.Quantity)}, nil
}

// ResolveLines agrega el costo de varias líneas y cuenta las marcadas.
func (r *Resolver) ResolveLines(ctx context.Context, lines []entity.SaleLineItem) (ResolveResult, error) {
	res := ResolveResult{TotalCost: decimal.Zero}
	for _, line := range lines {
		lc, err := r.ResolveLine(ctx, line)
		if err != nil {
			return ResolveResult{}, err
		}
		res.TotalCost = res.TotalCost.Add(lc.TotalCost)
		if lc.Flagged {
			res.FlaggedLines++
		}
	}
	return res, nil
}
