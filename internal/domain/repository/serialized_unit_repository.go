package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// SerializedUnitRepository define el puerto de persistencia para unidades
// serializadas. El serial es único global.
type SerializedUnitRepository interface {
	// Create inserta la unidad. Devuelve domain.ErrDuplicateSerial si el
	// serial ya existe.
	Create(ctx context.Context, unit *entity.SerializedUnit) error

	// Get obtiene la unidad por serial sin importar su estado (el costo es un
	// hecho histórico inmutable que el resolver consulta aun después de la
	// venta). Nil si no existe.
	Get(ctx context.Context, serialNumber string) (*entity.SerializedUnit, error)

	// GetForUpdate bloquea la fila de la unidad (SELECT FOR UPDATE). Nil si no existe.
	GetForUpdate(ctx context.Context, serialNumber string) (*entity.SerializedUnit, error)

	// MarkSold cambia el estado a sold y estampa SoldAt.
	MarkSold(ctx context.Context, unit *entity.SerializedUnit) error

	// GetMany obtiene las unidades de varios seriales en una sola consulta.
	// Los seriales inexistentes simplemente no aparecen en el resultado.
	GetMany(ctx context.Context, serialNumbers []string) (map[string]*entity.SerializedUnit, error)
}
