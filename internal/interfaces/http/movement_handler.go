package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockly-api/internal/application/dto"
	"github.com/jhoicas/stockly-api/internal/application/stock"
	"github.com/jhoicas/stockly-api/internal/application/usecase"
	"github.com/jhoicas/stockly-api/internal/domain"
	"github.com/jhoicas/stockly-api/internal/domain/entity"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP de movimientos de stock.
type MovementHandler struct {
	listUC   *usecase.MovementUseCase
	recordUC *stock.RecordMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(listUC *usecase.MovementUseCase, recordUC *stock.RecordMovementUseCase) *MovementHandler {
	return &MovementHandler{listUC: listUC, recordUC: recordUC}
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         movements
// @Produce      json
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo (entry/exit)"
// @Param        limit       query  int     false  "Máximo de resultados"  default(50)  minimum(1)  maximum(200)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{}

	if raw := c.Query("product_id"); raw != "" {
		id := int64(c.QueryInt("product_id"))
		if id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id inválido"})
		}
		filter.ProductID = &id
	}
	if raw := c.Query("type"); raw != "" {
		t := entity.MovementType(raw)
		if !t.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser entry o exit"})
		}
		filter.Type = &t
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit debe estar entre 1 y 200"})
	}
	filter.Limit = limit

	resp, err := h.listUC.List(c.Context(), filter)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

// Create godoc
// @Summary      Registrar entrada o salida de stock
// @Description  Aplica el movimiento como unidad atómica: actualiza la cantidad
//
//	del producto y persiste el registro, o falla completo sin efecto parcial.
//
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, type (entry/exit), quantity, notes"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	movement, err := h.recordUC.RecordMovement(c.Context(), stock.MovementInput{
		ProductID: in.ProductID,
		Type:      entity.MovementType(in.Type),
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	})
	if err != nil {
		// Errores de dominio (producto inexistente, stock insuficiente): rechazo
		// visible para el caller, con mensaje legible y la cantidad real disponible.
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DOMAIN", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return internalError(c, err)
	}
	resp := dto.NewMovementResponse(movement)
	return c.Status(fiber.StatusCreated).JSON(resp)
}
