package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrItemNotFound       = errors.New("artículo no encontrado")
	ErrSerialNotFound     = errors.New("serial no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrDuplicateBatch     = errors.New("el lote ya existe para el artículo")
	ErrDuplicateSerial    = errors.New("el número de serie ya existe")
	ErrAlreadySold        = errors.New("la unidad ya fue vendida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidRange       = errors.New("rango de fechas inválido")
)

// InsufficientStockError reporta el lote, la cantidad pedida y la disponible
// cuando una venta o un ajuste dejaría el stock en negativo.
// errors.Is(err, ErrInsufficientStock) sigue funcionando para el caller.
type InsufficientStockError struct {
	BatchNumber string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en lote %s: solicitado %s, disponible %s",
		e.BatchNumber, e.Requested.String(), e.Available.String())
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
