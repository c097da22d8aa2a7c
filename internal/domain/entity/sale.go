package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Reversed y Returned son estados de negocio distintos:
// las ventas reversadas se excluyen del COGS, las devueltas del ingreso.
const (
	SaleStatusCompleted = "Completed"
	SaleStatusReversed  = "Reversed"

	ReturnStatusNone     = "none"
	ReturnStatusReturned = "returned"
)

// Sale es la cabecera de una venta/factura. Este motor la consume de solo
// lectura: el subsistema de ventas es el dueño del registro.
type Sale struct {
	ID                  string
	CompanyID           string
	TotalAmount         decimal.Decimal
	Status              string // Completed | Reversed
	ReturnInvoiceStatus string // none | returned
	CreatedAt           time.Time
	Lines               []SaleLineItem
}

// IsReturned indica si la venta fue devuelta (excluida del ingreso).
func (s *Sale) IsReturned() bool { return s.ReturnInvoiceStatus == ReturnStatusReturned }

// IsReversed indica si la venta fue reversada (excluida del COGS).
func (s *Sale) IsReversed() bool { return s.Status == SaleStatusReversed }

// SaleLineItem es una línea de venta. Si IsSerialized, SerialNumbers tiene
// exactamente Quantity seriales; si no, BatchNumber indica el lote consumido.
type SaleLineItem struct {
	ID            string
	SaleID        string
	ItemID        string
	Quantity      decimal.Decimal
	IsSerialized  bool
	SerialNumbers []string
	BatchNumber   string
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
}

// ── Origen de costo como variante etiquetada ──────────────────────────────────
//
// El resolver de costos hace switch exhaustivo sobre CostSource en lugar de
// inspeccionar el par booleano+campos opcionales, de modo que una combinación
// de campos indefinida no puede colarse silenciosamente.

// CostSource identifica de dónde sale el costo de una línea de venta.
type CostSource interface{ isCostSource() }

// SerializedSource costo por unidades serializadas individuales.
type SerializedSource struct {
	Serials []string
}

// BatchedSource costo por lote no serializado.
type BatchedSource struct {
	ItemID      string
	BatchNumber string
	Quantity    decimal.Decimal
}

func (SerializedSource) isCostSource() {}
func (BatchedSource) isCostSource()    {}

// CostSource construye la variante a partir de los campos de la línea.
func (l SaleLineItem) CostSource() CostSource {
	if l.IsSerialized {
		return SerializedSource{Serials: l.SerialNumbers}
	}
	return BatchedSource{ItemID: l.ItemID, BatchNumber: l.BatchNumber, Quantity: l.Quantity}
}
