package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// SalesRepository define el puerto de lectura sobre las ventas. El motor de
// costeo nunca crea ni modifica ventas: el subsistema de ventas es el dueño.
// Una venta y sus líneas se escriben en una sola transacción, así que una
// lectura nunca ve una venta con líneas parciales.
type SalesRepository interface {
	// ListInPeriod devuelve las ventas de la empresa con createdAt dentro del
	// rango inclusivo [start, end], con sus líneas cargadas. Los predicados de
	// exclusión (devuelta, reversada) los aplica el agregador, no la consulta.
	ListInPeriod(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Sale, error)
}
