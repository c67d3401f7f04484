package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockly-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para las métricas del dashboard.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// GetStats calcula las métricas sobre el data set completo al momento de la consulta.
// Usa COALESCE para devolver cero con inventario vacío. Los contadores de hoy
// comparan solo la fecha (día calendario local del servidor).
func (r *DashboardRepo) GetStats(ctx context.Context, day time.Time) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{}

	const productQuery = `
	SELECT
	    COUNT(*)                                                    AS total_products,
	    COALESCE(SUM(quantity), 0)                                  AS total_quantity,
	    COUNT(*) FILTER (WHERE quantity <= min_stock)               AS low_stock_count,
	    COALESCE(SUM(price * quantity), 0)                          AS total_value
	FROM products`

	err := r.pool.QueryRow(ctx, productQuery).Scan(
		&stats.TotalProducts,
		&stats.TotalQuantity,
		&stats.LowStockCount,
		&stats.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetStats products: %w", err)
	}

	const movementQuery = `
	SELECT
	    COUNT(*) FILTER (WHERE type = 'entry') AS entries_today,
	    COUNT(*) FILTER (WHERE type = 'exit')  AS exits_today
	FROM movements
	WHERE created_at::date = $1::date`

	err = r.pool.QueryRow(ctx, movementQuery, day).Scan(
		&stats.EntriesToday,
		&stats.ExitsToday,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetStats movements: %w", err)
	}

	return stats, nil
}
