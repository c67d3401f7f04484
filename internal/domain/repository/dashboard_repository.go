package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats métricas agregadas calculadas sobre el data set completo al momento de la consulta.
type DashboardStats struct {
	TotalProducts int
	TotalQuantity int
	LowStockCount int             // productos con quantity <= min_stock
	TotalValue    decimal.Decimal // SUM(price * quantity), redondeado a 2 decimales
	EntriesToday  int
	ExitsToday    int
}

// DashboardRepository consultas de solo lectura para el dashboard.
// Bypasea el motor de movimientos: no hay invariante que proteger en lecturas.
type DashboardRepository interface {
	// GetStats calcula las métricas; day define el "hoy" (comparación solo por fecha,
	// hora local del servidor) para entries/exits.
	GetStats(ctx context.Context, day time.Time) (*DashboardStats, error)
}
