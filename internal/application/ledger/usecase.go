// Package ledger implementa el kardex: la fuente de verdad de cantidades y
// costo base del inventario. Toda mutación de AvailableQty pasa por aquí.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// StockLedgerUseCase expone las operaciones atómicas del kardex: recepción de
// lotes y unidades serializadas, consumo por venta, ajustes manuales y
// valoración del inventario al costo.
type StockLedgerUseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	batchRepo repository.StockBatchRepository
	movRepo   repository.StockMovementRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	batchRepo repository.StockBatchRepository,
	movRepo repository.StockMovementRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner, itemRepo: itemRepo, batchRepo: batchRepo, movRepo: movRepo}
}

// ReceiveBatchInput entrada para la recepción de un lote no serializado.
type ReceiveBatchInput struct {
	CompanyID    string
	UserID       string
	ItemID       string
	BatchNumber  string
	PurchaseID   string
	PurchaseQty  decimal.Decimal
	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal
	PurchaseDate time.Time
	ExpiryDate   *time.Time
}

// ReceiveBatch crea un lote en la recepción de una compra. Dentro de la misma
// transacción del insert calcula y estampa BeforePurchaseAvailableQty como la
// suma del disponible de los demás lotes del artículo (compute-and-stamp:
// determinista para tests, aproximado frente a ventas concurrentes).
func (uc *StockLedgerUseCase) ReceiveBatch(ctx context.Context, in ReceiveBatchInput) (*entity.StockBatch, error) {
	if in.ItemID == "" || in.BatchNumber == "" || !in.PurchaseQty.IsPositive() ||
		in.UnitCost.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if in.CompanyID != "" && item.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	purchaseDate := in.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}

	var created *entity.StockBatch
	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		_ repository.SerializedUnitRepository,
		movRepo repository.StockMovementRepository,
	) error {
		before, err := batchRepo.SumAvailableByItem(ctx, in.ItemID)
		if err != nil {
			return err
		}
		batch := &entity.StockBatch{
			ID:                         uuid.New().String(),
			ItemID:                     in.ItemID,
			BatchNumber:                in.BatchNumber,
			PurchaseID:                 in.PurchaseID,
			PurchaseQty:                in.PurchaseQty,
			AvailableQty:               in.PurchaseQty,
			SoldQty:                    decimal.Zero,
			BeforePurchaseAvailableQty: before,
			UnitCost:                   in.UnitCost,
			SellingPrice:               in.SellingPrice,
			PurchaseDate:               purchaseDate,
			ExpiryDate:                 in.ExpiryDate,
			CreatedAt:                  now,
			UpdatedAt:                  now,
		}
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		created = batch
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:          uuid.New().String(),
			ItemID:      in.ItemID,
			BatchNumber: in.BatchNumber,
			Type:        entity.MovementTypeIN,
			Quantity:    in.PurchaseQty,
			UnitCost:    in.UnitCost,
			Reason:      "recepción de compra",
			Reference:   in.PurchaseID,
			CreatedBy:   in.UserID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReceiveSerializedUnitInput entrada para la recepción de una unidad serializada.
type ReceiveSerializedUnitInput struct {
	CompanyID    string
	UserID       string
	ItemID       string
	SerialNumber string
	PurchaseID   string
	UnitCost     decimal.Decimal
}

// ReceiveSerializedUnit registra un artículo físico individual con su costo
// exacto de compra. Falla con ErrDuplicateSerial si el serial ya existe.
func (uc *StockLedgerUseCase) ReceiveSerializedUnit(ctx context.Context, in ReceiveSerializedUnitInput) (*entity.SerializedUnit, error) {
	if in.ItemID == "" || in.SerialNumber == "" || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if in.CompanyID != "" && item.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	unit := &entity.SerializedUnit{
		SerialNumber: in.SerialNumber,
		ItemID:       in.ItemID,
		PurchaseID:   in.PurchaseID,
		UnitCost:     in.UnitCost,
		Status:       entity.SerialStatusAvailable,
		CreatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.StockBatchRepository,
		serialRepo repository.SerializedUnitRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if err := serialRepo.Create(ctx, unit); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:           uuid.New().String(),
			ItemID:       in.ItemID,
			SerialNumber: in.SerialNumber,
			Type:         entity.MovementTypeIN,
			Quantity:     decimal.NewFromInt(1),
			UnitCost:     in.UnitCost,
			Reason:       "recepción de compra",
			Reference:    in.PurchaseID,
			CreatedBy:    in.UserID,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// Consume descuenta qty del lote de forma atómica: bloquea la fila
// (SELECT FOR UPDATE), verifica disponible >= qty y solo entonces muta.
// Con disponible insuficiente devuelve InsufficientStockError sin tocar nada.
//
// reference es la llave de idempotencia (identidad de la línea de venta):
// un reintento con el mismo reference devuelve el lote sin volver a descontar.
func (uc *StockLedgerUseCase) Consume(ctx context.Context, itemID, batchNumber string, qty decimal.Decimal, reference, userID string) (*entity.StockBatch, error) {
	if itemID == "" || batchNumber == "" || !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.StockBatch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		_ repository.SerializedUnitRepository,
		movRepo repository.StockMovementRepository,
	) error {
		batch, err := batchRepo.GetForUpdate(ctx, itemID, batchNumber)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if reference != "" {
			prev, err := movRepo.GetByReference(ctx, reference, entity.MovementTypeOUT)
			if err != nil {
				return err
			}
			if prev != nil {
				// Reintento de un consumo ya aplicado: no descontar dos veces
				result = batch
				return nil
			}
		}
		if batch.AvailableQty.LessThan(qty) {
			return &domain.InsufficientStockError{
				BatchNumber: batchNumber,
				Requested:   qty,
				Available:   batch.AvailableQty,
			}
		}
		now := time.Now()
		batch.AvailableQty = batch.AvailableQty.Sub(qty)
		batch.SoldQty = batch.SoldQty.Add(qty)
		batch.UpdatedAt = now
		if err := batchRepo.UpdateQuantities(ctx, batch); err != nil {
			return err
		}
		result = batch
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:          uuid.New().String(),
			ItemID:      itemID,
			BatchNumber: batchNumber,
			Type:        entity.MovementTypeOUT,
			Quantity:    qty.Neg(),
			UnitCost:    batch.UnitCost,
			Reason:      "consumo por venta",
			Reference:   reference,
			CreatedBy:   userID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConsumeSerial marca una unidad serializada como vendida. Linealizable por
// serial: con la fila bloqueada, una unidad solo puede pasar a sold una vez.
// ErrSerialNotFound si no existe, ErrAlreadySold si ya fue vendida (salvo
// reintento idempotente con el mismo reference).
func (uc *StockLedgerUseCase) ConsumeSerial(ctx context.Context, serialNumber, reference, userID string) (*entity.SerializedUnit, error) {
	if serialNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.SerializedUnit
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockBatchRepository,
		serialRepo repository.SerializedUnitRepository,
		movRepo repository.StockMovementRepository,
	) error {
		unit, err := serialRepo.GetForUpdate(ctx, serialNumber)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrSerialNotFound
		}
		if !unit.IsAvailable() {
			if reference != "" {
				prev, err := movRepo.GetByReference(ctx, reference, entity.MovementTypeOUT)
				if err != nil {
					return err
				}
				if prev != nil && prev.SerialNumber == serialNumber {
					result = unit
					return nil
				}
			}
			return domain.ErrAlreadySold
		}
		now := time.Now()
		unit.Status = entity.SerialStatusSold
		unit.SoldAt = &now
		if err := serialRepo.MarkSold(ctx, unit); err != nil {
			return err
		}
		result = unit
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:           uuid.New().String(),
			ItemID:       unit.ItemID,
			SerialNumber: serialNumber,
			Type:         entity.MovementTypeOUT,
			Quantity:     decimal.NewFromInt(-1),
			UnitCost:     unit.UnitCost,
			Reason:       "consumo por venta",
			Reference:    reference,
			CreatedBy:    userID,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Adjust aplica un ajuste manual al lote: positivo (devolución, reingreso) o
// negativo (merma, daño), siempre con motivo. El disponible resultante debe
// quedar dentro de [0, PurchaseQty]; por debajo devuelve InsufficientStockError
// y por encima ErrConflict.
func (uc *StockLedgerUseCase) Adjust(ctx context.Context, itemID, batchNumber string, deltaQty decimal.Decimal, reason, userID string) (*entity.StockBatch, error) {
	if itemID == "" || batchNumber == "" || deltaQty.IsZero() || reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.StockBatch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		_ repository.SerializedUnitRepository,
		movRepo repository.StockMovementRepository,
	) error {
		batch, err := batchRepo.GetForUpdate(ctx, itemID, batchNumber)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		newAvailable := batch.AvailableQty.Add(deltaQty)
		if newAvailable.IsNegative() {
			return &domain.InsufficientStockError{
				BatchNumber: batchNumber,
				Requested:   deltaQty.Neg(),
				Available:   batch.AvailableQty,
			}
		}
		if newAvailable.GreaterThan(batch.PurchaseQty) {
			return domain.ErrConflict // el disponible no puede superar lo comprado
		}
		now := time.Now()
		// SoldQty solo lo mueven los consumos por venta; un ajuste por merma
		// o corrección no es una venta.
		batch.AvailableQty = newAvailable
		batch.UpdatedAt = now
		if err := batchRepo.UpdateQuantities(ctx, batch); err != nil {
			return err
		}
		result = batch
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:          uuid.New().String(),
			ItemID:      itemID,
			BatchNumber: batchNumber,
			Type:        entity.MovementTypeADJUSTMENT,
			Quantity:    deltaQty,
			UnitCost:    batch.UnitCost,
			Reason:      reason,
			CreatedBy:   userID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CurrentValue devuelve la valoración del inventario al costo:
// suma de available_qty * unit_cost sobre todos los lotes, o sobre los de
// itemIDs si la lista no está vacía. Lectura sin transacción.
func (uc *StockLedgerUseCase) CurrentValue(ctx context.Context, itemIDs []string) (decimal.Decimal, error) {
	return uc.batchRepo.TotalValue(ctx, itemIDs)
}

// ItemBatches lista los lotes del artículo, los más antiguos primero.
// Falla con ErrItemNotFound si el artículo no existe.
func (uc *StockLedgerUseCase) ItemBatches(ctx context.Context, itemID string) ([]*entity.StockBatch, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return uc.batchRepo.ListByItem(ctx, itemID)
}

// Movements devuelve el historial de movimientos del artículo (el kardex
// propiamente dicho), los más recientes primero. from y to son opcionales.
func (uc *StockLedgerUseCase) Movements(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByItem(ctx, itemID, from, to, limit, offset)
}
