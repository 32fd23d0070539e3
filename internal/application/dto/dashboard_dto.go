package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados de solo lectura del dashboard del contratista.
type DashboardResponse struct {
	TotalSpent         decimal.Decimal    `json:"total_spent"`
	ActiveOrdersCount  int                `json:"active_orders_count"`
	ActiveProjectCount int                `json:"active_projects_count"`
	RecentOrders       []OrderResponse    `json:"recent_orders"`
	TopSuppliers       []SupplierResponse `json:"top_suppliers"`
}
