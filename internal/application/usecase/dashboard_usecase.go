package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/stockly-api/internal/application/dto"
	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

// dashboardListLimit tope de ítems en los listados del dashboard.
const dashboardListLimit = 10

// DashboardUseCase métricas de solo lectura calculadas al momento de la consulta.
// Lee directo de los stores, bypaseando el motor de movimientos.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	productRepo   repository.ProductRepository
	movementRepo  repository.MovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	dashboardRepo repository.DashboardRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		dashboardRepo: dashboardRepo,
		productRepo:   productRepo,
		movementRepo:  movementRepo,
	}
}

// Stats devuelve las métricas generales. "Hoy" es la fecha local del servidor.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	stats, err := uc.dashboardRepo.GetStats(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		TotalProducts: stats.TotalProducts,
		TotalQuantity: stats.TotalQuantity,
		LowStockCount: stats.LowStockCount,
		TotalValue:    stats.TotalValue.Round(2),
		EntriesToday:  stats.EntriesToday,
		ExitsToday:    stats.ExitsToday,
	}, nil
}

// LowStock devuelve hasta 10 productos en o bajo su mínimo.
func (uc *DashboardUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, _, err := uc.productRepo.List(ctx, repository.ProductFilter{
		LowStockOnly: true,
		SortBy:       repository.SortByCreatedAt,
		Page:         1,
		Limit:        dashboardListLimit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductResponse(p))
	}
	return items, nil
}

// Recent devuelve los 10 movimientos más recientes.
func (uc *DashboardUseCase) Recent(ctx context.Context) ([]dto.MovementResponse, error) {
	movements, err := uc.movementRepo.ListRecent(ctx, dashboardListLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.NewMovementResponse(m))
	}
	return items, nil
}
