package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/costing"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de lectura
// ──────────────────────────────────────────────────────────────────────────────

type stubBatchRepo struct {
	batches map[string]*entity.StockBatch // itemID|batchNumber
}

func (r *stubBatchRepo) Create(context.Context, *entity.StockBatch) error { return nil }
func (r *stubBatchRepo) Get(_ context.Context, itemID, batchNumber string) (*entity.StockBatch, error) {
	return r.batches[itemID+"|"+batchNumber], nil
}
func (r *stubBatchRepo) GetForUpdate(ctx context.Context, itemID, batchNumber string) (*entity.StockBatch, error) {
	return r.Get(ctx, itemID, batchNumber)
}
func (r *stubBatchRepo) UpdateQuantities(context.Context, *entity.StockBatch) error { return nil }
func (r *stubBatchRepo) SumAvailableByItem(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *stubBatchRepo) TotalValue(context.Context, []string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *stubBatchRepo) ListByItem(context.Context, string) ([]*entity.StockBatch, error) {
	return nil, nil
}

type stubSerialRepo struct {
	units map[string]*entity.SerializedUnit
}

func (r *stubSerialRepo) Create(context.Context, *entity.SerializedUnit) error { return nil }
func (r *stubSerialRepo) Get(_ context.Context, serialNumber string) (*entity.SerializedUnit, error) {
	return r.units[serialNumber], nil
}
func (r *stubSerialRepo) GetForUpdate(ctx context.Context, serialNumber string) (*entity.SerializedUnit, error) {
	return r.Get(ctx, serialNumber)
}
func (r *stubSerialRepo) MarkSold(context.Context, *entity.SerializedUnit) error { return nil }
func (r *stubSerialRepo) GetMany(_ context.Context, serialNumbers []string) (map[string]*entity.SerializedUnit, error) {
	out := make(map[string]*entity.SerializedUnit)
	for _, sn := range serialNumbers {
		if u, ok := r.units[sn]; ok {
			out[sn] = u
		}
	}
	return out, nil
}

func newResolver() *costing.Resolver {
	now := time.Now()
	batches := &stubBatchRepo{batches: map[string]*entity.StockBatch{
		"item-1|L-001": {
			ItemID: "item-1", BatchNumber: "L-001",
			UnitCost: decimal.NewFromInt(20), PurchaseDate: now,
		},
	}}
	serials := &stubSerialRepo{units: map[string]*entity.SerializedUnit{
		"S-10": {SerialNumber: "S-10", UnitCost: decimal.NewFromInt(10), Status: entity.SerialStatusSold},
		"S-12": {SerialNumber: "S-12", UnitCost: decimal.NewFromInt(12), Status: entity.SerialStatusSold},
		"S-15": {SerialNumber: "S-15", UnitCost: decimal.NewFromInt(15), Status: entity.SerialStatusAvailable},
	}}
	return costing.NewResolver(batches, serials)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas serializadas: suma de costos exactos por unidad
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveLine_Serializada_SumaCostosExactos(t *testing.T) {
	r := newResolver()
	line := entity.SaleLineItem{
		IsSerialized:  true,
		SerialNumbers: []string{"S-10", "S-12", "S-15"},
	}

	lc, err := r.ResolveLine(context.Background(), line)
	require.NoError(t, err)

	// 10 + 12 + 15 = 37: cada unidad aporta su costo real, no un promedio
	assert.True(t, decimal.NewFromInt(37).Equal(lc.TotalCost),
		"el costo debe ser la suma exacta por serial, fue %s", lc.TotalCost)
	assert.False(t, lc.Flagged)
}

func TestResolveLine_Serializada_EstadoVendidoNoImporta(t *testing.T) {
	// S-10 está vendida y S-15 disponible: ambas resuelven su costo histórico.
	r := newResolver()
	line := entity.SaleLineItem{
		IsSerialized:  true,
		SerialNumbers: []string{"S-10", "S-15"},
	}

	lc, err := r.ResolveLine(context.Background(), line)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(lc.TotalCost))
}

func TestResolveLine_SerialFaltante_MarcaYContribuyeCero(t *testing.T) {
	r := newResolver()
	line := entity.SaleLineItem{
		IsSerialized:  true,
		SerialNumbers: []string{"S-10", "no-existe"},
	}

	lc, err := r.ResolveLine(context.Background(), line)
	require.NoError(t, err, "un serial faltante no debe abortar el reporte")
	assert.True(t, decimal.NewFromInt(10).Equal(lc.TotalCost),
		"el serial faltante contribuye cero, el resto su costo")
	assert.True(t, lc.Flagged, "la línea debe marcarse por precisión degradada")
}

func TestResolveLine_SerializadaSinSeriales_Marca(t *testing.T) {
	r := newResolver()
	line := entity.SaleLineItem{IsSerialized: true}

	lc, err := r.ResolveLine(context.Background(), line)
	require.NoError(t, err)
	assert.True(t, lc.TotalCost.IsZero())
	assert.True(t, lc.Flagged)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas por lote: costo unitario del lote por cantidad
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveLine_Lote_CostoPorCantidad(t *testing.T) {
	r := newResolver()
	line := entity.SaleLineItem{
		ItemID:      "item-1",
		BatchNumber: "L-001",
		Quantity:    decimal.NewFromInt(3),
	}

	lc, err := r.ResolveLine(context.Background(), line)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(lc.TotalCost),
		"3 unidades a costo 20 deben costar 60, fue %s", lc.TotalCost)
	assert.False(t, lc.Flagged)
}

func TestResolveLine_LoteInexistente_MarcaYContribuyeCero(t *testing.T) {
	r := newResolver()
	line := entity.SaleLineItem{
		ItemID:      "item-1",
		BatchNumber: "no-existe",
		Quantity:    decimal.NewFromInt(3),
	}

	lc, err := r.ResolveLine(context.Background(), line)
	require.NoError(t, err)
	assert.True(t, lc.TotalCost.IsZero())
	assert.True(t, lc.Flagged)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregación de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveLines_AgregaYCuentaMarcadas(t *testing.T) {
	r := newResolver()
	lines := []entity.SaleLineItem{
		{IsSerialized: true, SerialNumbers: []string{"S-10", "S-12"}},          // 22
		{ItemID: "item-1", BatchNumber: "L-001", Quantity: decimal.NewFromInt(2)}, // 40
		{ItemID: "item-1", BatchNumber: "huérfano", Quantity: decimal.NewFromInt(1)}, // 0, marcada
	}

	res, err := r.ResolveLines(context.Background(), lines)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(62).Equal(res.TotalCost),
		"22 + 40 + 0 = 62, fue %s", res.TotalCost)
	assert.Equal(t, 1, res.FlaggedLines)
}
