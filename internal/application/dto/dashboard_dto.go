package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse métricas generales del stock.
type DashboardStatsResponse struct {
	TotalProducts int             `json:"total_products"`
	TotalQuantity int             `json:"total_quantity"`
	LowStockCount int             `json:"low_stock_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	EntriesToday  int             `json:"entries_today"`
	ExitsToday    int             `json:"exits_today"`
}
