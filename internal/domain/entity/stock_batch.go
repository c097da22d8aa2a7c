package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un lote. No se persisten: se calculan desde AvailableQty.
const (
	BatchStateCreated           = "CREATED"            // sin consumos todavía
	BatchStatePartiallyConsumed = "PARTIALLY_CONSUMED" // 0 < disponible < comprado
	BatchStateExhausted         = "EXHAUSTED"          // disponible = 0
)

// StockBatch es la unidad de costeo para artículos no serializados: un grupo
// de unidades idénticas recibidas juntas, con cantidad y costo propios.
// Invariante: 0 <= AvailableQty <= PurchaseQty en todo momento.
// Un lote referenciado por ventas nunca se borra; se agota (AvailableQty = 0).
type StockBatch struct {
	ID          string
	ItemID      string
	BatchNumber string // único por artículo
	PurchaseID  string

	PurchaseQty  decimal.Decimal // inmutable, fijada en la recepción
	AvailableQty decimal.Decimal
	SoldQty      decimal.Decimal

	// BeforePurchaseAvailableQty es la suma de AvailableQty de los demás lotes
	// del mismo artículo en el instante de la recepción. Valor de auditoría,
	// aproximado respecto a ventas concurrentes; inmutable tras la creación.
	BeforePurchaseAvailableQty decimal.Decimal

	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal

	PurchaseDate time.Time
	ExpiryDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfitMarginPct calcula (precio - costo) / costo * 100 en el momento de la
// lectura. No se almacena: así nunca queda desactualizado frente al precio.
func (b *StockBatch) ProfitMarginPct() decimal.Decimal {
	if b.UnitCost.IsZero() {
		return decimal.Zero
	}
	return b.SellingPrice.Sub(b.UnitCost).Div(b.UnitCost).Mul(decimal.NewFromInt(100)).Round(2)
}

// State deriva el estado del lote a partir de la cantidad disponible.
func (b *StockBatch) State() string {
	switch {
	case b.AvailableQty.IsZero():
		return BatchStateExhausted
	case b.AvailableQty.LessThan(b.PurchaseQty):
		return BatchStatePartiallyConsumed
	default:
		return BatchStateCreated
	}
}

// Value devuelve la valoración al costo del remanente (disponible * costo unitario).
func (b *StockBatch) Value() decimal.Decimal {
	return b.AvailableQty.Mul(b.UnitCost)
}
