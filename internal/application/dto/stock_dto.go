package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// ReceiveBatchRequest cuerpo de POST /api/stock/batches.
type ReceiveBatchRequest struct {
	ItemID       string          `json:"item_id"`
	BatchNumber  string          `json:"batch_number"`
	PurchaseID   string          `json:"purchase_id"`
	PurchaseQty  decimal.Decimal `json:"purchase_qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	PurchaseDate string          `json:"purchase_date"` // YYYY-MM-DD; vacío = hoy
	ExpiryDate   string          `json:"expiry_date"`   // YYYY-MM-DD; opcional
}

// ReceiveSerialRequest cuerpo de POST /api/stock/serials.
type ReceiveSerialRequest struct {
	ItemID       string          `json:"item_id"`
	SerialNumber string          `json:"serial_number"`
	PurchaseID   string          `json:"purchase_id"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// ConsumeRequest cuerpo de POST /api/stock/batches/consume.
// Reference es la identidad de la línea de venta; actúa como llave de
// idempotencia en reintentos.
type ConsumeRequest struct {
	ItemID      string          `json:"item_id"`
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference"`
}

// ConsumeSerialRequest cuerpo de POST /api/stock/serials/consume.
type ConsumeSerialRequest struct {
	SerialNumber string `json:"serial_number"`
	Reference    string `json:"reference"`
}

// AdjustRequest cuerpo de POST /api/stock/batches/adjust.
type AdjustRequest struct {
	ItemID      string          `json:"item_id"`
	BatchNumber string          `json:"batch_number"`
	DeltaQty    decimal.Decimal `json:"delta_qty"` // positivo reingreso, negativo merma
	Reason      string          `json:"reason"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// StockBatchDTO representación de un lote en respuestas.
type StockBatchDTO struct {
	ID                         string          `json:"id"`
	ItemID                     string          `json:"item_id"`
	BatchNumber                string          `json:"batch_number"`
	PurchaseID                 string          `json:"purchase_id"`
	PurchaseQty                decimal.Decimal `json:"purchase_qty"`
	AvailableQty               decimal.Decimal `json:"available_qty"`
	SoldQty                    decimal.Decimal `json:"sold_qty"`
	BeforePurchaseAvailableQty decimal.Decimal `json:"before_purchase_available_qty"`
	UnitCost                   decimal.Decimal `json:"unit_cost"`
	SellingPrice               decimal.Decimal `json:"selling_price"`
	ProfitMarginPct            decimal.Decimal `json:"profit_margin_pct"` // calculado en la lectura
	State                      string          `json:"state"`
	PurchaseDate               time.Time       `json:"purchase_date"`
	ExpiryDate                 *time.Time      `json:"expiry_date,omitempty"`
}

// SerializedUnitDTO representación de una unidad serializada en respuestas.
type SerializedUnitDTO struct {
	SerialNumber string          `json:"serial_number"`
	ItemID       string          `json:"item_id"`
	PurchaseID   string          `json:"purchase_id"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Status       string          `json:"status"`
	SoldAt       *time.Time      `json:"sold_at,omitempty"`
}

// StockMovementDTO un asiento del kardex en respuestas.
type StockMovementDTO struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	BatchNumber  string          `json:"batch_number,omitempty"`
	SerialNumber string          `json:"serial_number,omitempty"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Reason       string          `json:"reason,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StockValueDTO respuesta de GET /api/stock/value.
type StockValueDTO struct {
	TotalValue decimal.Decimal `json:"total_value"`
	ItemIDs    []string        `json:"item_ids,omitempty"` // filtro aplicado, si lo hubo
}

// ── Items ─────────────────────────────────────────────────────────────────────

// CreateItemRequest cuerpo de POST /api/items.
type CreateItemRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	IsSerialized bool   `json:"is_serialized"`
}

// ItemDTO representación de un artículo en respuestas.
type ItemDTO struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	IsSerialized bool   `json:"is_serialized"`
}
