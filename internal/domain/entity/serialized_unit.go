package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una unidad serializada.
const (
	SerialStatusAvailable = "available"
	SerialStatusSold      = "sold"
)

// SerializedUnit es un artículo físico identificado individualmente (IMEI,
// serial de fábrica) con su costo exacto capturado en la recepción.
// UnitCost es inmutable: el costo histórico no cambia aunque el artículo
// se ajuste o se devuelva después.
type SerializedUnit struct {
	SerialNumber string // único global
	ItemID       string
	PurchaseID   string
	UnitCost     decimal.Decimal
	Status       string // available | sold
	CreatedAt    time.Time
	SoldAt       *time.Time
}

// IsAvailable indica si la unidad puede venderse.
func (u *SerializedUnit) IsAvailable() bool {
	return u.Status == SerialStatusAvailable
}
