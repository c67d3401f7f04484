package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockly-api/internal/application/usecase"
)

// DashboardHandler maneja las peticiones HTTP del dashboard (solo lectura).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Métricas generales del stock
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(stats)
}

// LowStock godoc
// @Summary      Productos con stock bajo (hasta 10)
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	products, err := h.uc.LowStock(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(products)
}

// Recent godoc
// @Summary      Movimientos más recientes (hasta 10)
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/recent [get]
func (h *DashboardHandler) Recent(c *fiber.Ctx) error {
	movements, err := h.uc.Recent(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(movements)
}
