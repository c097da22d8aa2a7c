package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeIN         = "IN"         // recepción de compra
	MovementTypeOUT        = "OUT"        // consumo por venta
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual (merma, daño, corrección)
)

// StockMovement es el registro de auditoría de cada mutación del kardex.
// Reference identifica la operación de negocio que originó el movimiento
// (línea de venta, compra, nota de ajuste) y actúa como llave de idempotencia
// para reintentos de consumo: un mismo Reference nunca descuenta dos veces.
type StockMovement struct {
	ID           string
	ItemID       string
	BatchNumber  string // vacío para movimientos de unidades serializadas
	SerialNumber string // vacío para movimientos de lote
	Type         string
	Quantity     decimal.Decimal // positivo IN/ajuste+, negativo OUT/ajuste-
	UnitCost     decimal.Decimal
	Reason       string
	Reference    string
	CreatedBy    string
	CreatedAt    time.Time
}
