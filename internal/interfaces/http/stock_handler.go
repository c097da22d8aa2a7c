package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del kardex (protegido).
type StockHandler struct {
	uc *ledger.StockLedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.StockLedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ReceiveBatch godoc
// @Summary      Recibir lote de compra
// @Description  Crea un lote con su costo unitario y estampa la foto del
//
//	disponible previo del artículo.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveBatchRequest  true  "item_id, batch_number, purchase_qty, unit_cost, selling_price"
// @Success      201   {object}  dto.StockBatchDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/batches [post]
func (h *StockHandler) ReceiveBatch(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	var purchaseDate time.Time
	if in.PurchaseDate != "" {
		var err error
		purchaseDate, err = time.Parse("2006-01-02", in.PurchaseDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "purchase_date inválida (YYYY-MM-DD)"})
		}
	}
	var expiryDate *time.Time
	if in.ExpiryDate != "" {
		t, err := time.Parse("2006-01-02", in.ExpiryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiry_date inválida (YYYY-MM-DD)"})
		}
		expiryDate = &t
	}

	batch, err := h.uc.ReceiveBatch(c.Context(), ledger.ReceiveBatchInput{
		CompanyID:    companyID,
		UserID:       userID,
		ItemID:       in.ItemID,
		BatchNumber:  in.BatchNumber,
		PurchaseID:   in.PurchaseID,
		PurchaseQty:  in.PurchaseQty,
		UnitCost:     in.UnitCost,
		SellingPrice: in.SellingPrice,
		PurchaseDate: purchaseDate,
		ExpiryDate:   expiryDate,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchDTO(batch))
}

// ReceiveSerial godoc
// @Summary      Recibir unidad serializada
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveSerialRequest  true  "item_id, serial_number, unit_cost"
// @Success      201   {object}  dto.SerializedUnitDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/serials [post]
func (h *StockHandler) ReceiveSerial(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveSerialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.uc.ReceiveSerializedUnit(c.Context(), ledger.ReceiveSerializedUnitInput{
		CompanyID:    companyID,
		UserID:       userID,
		ItemID:       in.ItemID,
		SerialNumber: in.SerialNumber,
		PurchaseID:   in.PurchaseID,
		UnitCost:     in.UnitCost,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSerialDTO(unit))
}

// Consume godoc
// @Summary      Consumir cantidad de un lote
// @Description  Descuenta atómicamente la cantidad vendida. Reference actúa
//
//	como llave de idempotencia en reintentos.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "item_id, batch_number, quantity, reference"
// @Success      200   {object}  dto.StockBatchDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/batches/consume [post]
func (h *StockHandler) Consume(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Consume(c.Context(), in.ItemID, in.BatchNumber, in.Quantity, in.Reference, userID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(toBatchDTO(batch))
}

// ConsumeSerial godoc
// @Summary      Consumir unidad serializada
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeSerialRequest  true  "serial_number, reference"
// @Success      200   {object}  dto.SerializedUnitDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/serials/consume [post]
func (h *StockHandler) ConsumeSerial(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConsumeSerialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.uc.ConsumeSerial(c.Context(), in.SerialNumber, in.Reference, userID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(toSerialDTO(unit))
}

// Adjust godoc
// @Summary      Ajuste manual de lote
// @Description  Aplica un delta con motivo (merma, daño, devolución). El
//
//	disponible resultante debe quedar entre 0 y lo comprado.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "item_id, batch_number, delta_qty, reason"
// @Success      200   {object}  dto.StockBatchDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/batches/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Adjust(c.Context(), in.ItemID, in.BatchNumber, in.DeltaQty, in.Reason, userID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(toBatchDTO(batch))
}

// Value godoc
// @Summary      Valoración del inventario al costo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  []string  false  "Filtrar por artículos (repetible)"
// @Success      200  {object}  dto.StockValueDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/value [get]
func (h *StockHandler) Value(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var itemIDs []string
	if q := c.Query("item_id"); q != "" {
		itemIDs = append(itemIDs, q)
	}
	total, err := h.uc.CurrentValue(c.Context(), itemIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockValueDTO{TotalValue: total, ItemIDs: itemIDs})
}

// Batches godoc
// @Summary      Lotes de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  true  "ID del artículo"
// @Success      200  {array}   dto.StockBatchDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/batches [get]
func (h *StockHandler) Batches(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es obligatorio"})
	}
	batches, err := h.uc.ItemBatches(c.Context(), itemID)
	if err != nil {
		return stockError(c, err)
	}
	out := make([]dto.StockBatchDTO, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchDTO(b))
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos (kardex) de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  true   "ID del artículo"
// @Param        from     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit    query  int     false  "Máximo de filas (default 50)"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.StockMovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es obligatorio"})
	}

	var from, to *time.Time
	if q := c.Query("from"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
		}
		from = &t
	}
	if q := c.Query("to"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	movements, err := h.uc.Movements(c.Context(), itemID, from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return stockError(c, err)
	}
	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(out)
}

// stockError mapea errores del dominio del kardex a respuestas HTTP.
func stockError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("lote %s: solicitado %s, disponible %s",
				insufficient.BatchNumber, insufficient.Requested, insufficient.Available),
		})
	}
	switch {
	case err == domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case err == domain.ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	case err == domain.ErrSerialNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "serial no encontrado"})
	case err == domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	case err == domain.ErrDuplicateBatch:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_BATCH", Message: "el lote ya existe para este artículo"})
	case err == domain.ErrDuplicateSerial:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SERIAL", Message: "el serial ya está registrado"})
	case err == domain.ErrAlreadySold:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_SOLD", Message: "la unidad ya fue vendida"})
	case err == domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el ajuste dejaría el disponible por encima de lo comprado"})
	case err == domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toBatchDTO(b *entity.StockBatch) dto.StockBatchDTO {
	return dto.StockBatchDTO{
		ID:                         b.ID,
		ItemID:                     b.ItemID,
		BatchNumber:                b.BatchNumber,
		PurchaseID:                 b.PurchaseID,
		PurchaseQty:                b.PurchaseQty,
		AvailableQty:               b.AvailableQty,
		SoldQty:                    b.SoldQty,
		BeforePurchaseAvailableQty: b.BeforePurchaseAvailableQty,
		UnitCost:                   b.UnitCost,
		SellingPrice:               b.SellingPrice,
		ProfitMarginPct:            b.ProfitMarginPct(),
		State:                      b.State(),
		PurchaseDate:               b.PurchaseDate,
		ExpiryDate:                 b.ExpiryDate,
	}
}

func toMovementDTO(m *entity.StockMovement) dto.StockMovementDTO {
	return dto.StockMovementDTO{
		ID:           m.ID,
		ItemID:       m.ItemID,
		BatchNumber:  m.BatchNumber,
		SerialNumber: m.SerialNumber,
		Type:         m.Type,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		Reason:       m.Reason,
		Reference:    m.Reference,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func toSerialDTO(u *entity.SerializedUnit) dto.SerializedUnitDTO {
	return dto.SerializedUnitDTO{
		SerialNumber: u.SerialNumber,
		ItemID:       u.ItemID,
		PurchaseID:   u.PurchaseID,
		UnitCost:     u.UnitCost,
		Status:       u.Status,
		SoldAt:       u.SoldAt,
	}
}
