package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para el catálogo de artículos.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Item, error)
}
