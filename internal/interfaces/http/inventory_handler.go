package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/replenishment"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del ledger de stock y de las
// sugerencias de reposición (protegido).
type InventoryHandler struct {
	ledger     *inventory.LedgerUseCase
	suggestion *replenishment.SuggestionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, suggestion *replenishment.SuggestionUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, suggestion: suggestion}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, direction (IN/OUT), quantity"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.ledger.RecordMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		ActorID:   userID,
		Reference: in.Reference,
		Notes:     in.Notes,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos: direction IN/OUT y quantity > 0"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado o inactivo"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{
		Movement:    toMovementDTO(result.Movement),
		StockBefore: result.StockBefore,
		StockAfter:  result.StockAfter,
	})
}

// GetHistory godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        direction   query  string  false  "IN u OUT"
// @Param        from        query  string  false  "Desde (RFC 3339)"
// @Param        to          query  string  false  "Hasta (RFC 3339)"
// @Param        limit       query  int     false  "Máximo de filas (default 50, tope 500)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	filter := repository.MovementFilter{
		ProductID: q.ProductID,
		Direction: q.Direction,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if q.From != "" {
		t, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC 3339"})
		}
		filter.From = &t
	}
	if q.To != "" {
		t, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC 3339"})
		}
		filter.To = &t
	}
	movements, err := h.ledger.GetHistory(c.Context(), filter)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser IN u OUT"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// GetSuggestion godoc
// @Summary      Sugerencia de reposición de un producto
// @Description  Aplica la estrategia de la política del producto (EOQ o MANUAL)
//
//	y devuelve cantidad sugerida, punto de reorden y la razón.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "Producto (UUID)"
// @Success      200  {object}  dto.SuggestionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{product_id}/replenishment-suggestion [get]
func (h *InventoryHandler) GetSuggestion(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	s, err := h.suggestion.GetSuggestion(c.Context(), productID, nil)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if err == domain.ErrUnsupportedStrategy {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_STRATEGY", Message: "estrategia de la política no registrada"})
		}
		if err == domain.ErrInvalidStrategyParams {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_STRATEGY_PARAMS", Message: "parámetros de la estrategia inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SuggestionResponse{
		ProductID:          s.ProductID,
		SKU:                s.SKU,
		StrategyUsed:       s.StrategyUsed,
		SuggestedQuantity:  s.SuggestedQuantity,
		ReorderPoint:       s.ReorderPoint,
		StockOnHand:        s.StockOnHand,
		NeedsReplenishment: s.NeedsReplenishment,
		Reason:             s.Reason,
		Params:             s.Params,
	})
}

func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:        m.ID,
		ProductID: m.ProductID,
		Direction: m.Direction,
		Quantity:  m.Quantity,
		Reference: m.Reference,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
