package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockly-api/internal/application/dto"
	"github.com/jhoicas/stockly-api/internal/application/stock"
	"github.com/jhoicas/stockly-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	MovementUC     *usecase.MovementUseCase
	RecordMovement *stock.RecordMovementUseCase
	DashboardUC    *usecase.DashboardUseCase
	AppName        string
	AppVersion     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"app":     deps.AppName,
			"version": deps.AppVersion,
		})
	})

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.ListCategories)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movements
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.RecordMovement)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)

	// Dashboard (solo lectura)
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/low-stock", dashboardHandler.LowStock)
	dashboard.Get("/recent", dashboardHandler.Recent)
}

// internalError responde 500 sin exponer detalle interno.
func internalError(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
