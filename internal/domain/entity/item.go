package entity

import "time"

// Item es un artículo del catálogo. El motor solo lo usa para validar que
// las recepciones referencian un artículo existente y para mostrar nombres.
type Item struct {
	ID           string
	CompanyID    string
	SKU          string
	Name         string
	IsSerialized bool // modo de costeo por defecto al recibir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
