package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ItemUseCase CRUD mínimo del catálogo de artículos. El motor de costeo solo
// necesita resolver itemID -> artículo; el catálogo completo vive fuera.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create registra un artículo de la empresa.
func (uc *ItemUseCase) Create(ctx context.Context, companyID string, in dto.CreateItemRequest) (*dto.ItemDTO, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		IsSerialized: in.IsSerialized,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemDTO(item), nil
}

// GetByID obtiene un artículo validando que pertenezca a la empresa.
func (uc *ItemUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ItemDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toItemDTO(item), nil
}

// List lista los artículos de la empresa.
func (uc *ItemUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.ItemDTO, error) {
	page.DefaultPage()
	items, err := uc.itemRepo.List(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemDTO(it))
	}
	return out, nil
}

func toItemDTO(it *entity.Item) *dto.ItemDTO {
	return &dto.ItemDTO{
		ID:           it.ID,
		SKU:          it.SKU,
		Name:         it.Name,
		IsSerialized: it.IsSerialized,
	}
}
