package repository

import (
	"github.com/shopspring/decimal"

	"github.com/buildlink/marketplace-api/internal/domain/entity"
)

// AnalyticsRepository define las agregaciones de solo lectura del dashboard
// del contratista.
type AnalyticsRepository interface {
	TotalSpend(contractorID string) (decimal.Decimal, error)
	// ActiveOrderCount cuenta órdenes que no están Completed ni Delivered.
	ActiveOrderCount(contractorID string) (int, error)
	// ActiveProjectCount cuenta proyectos que no están Completed.
	ActiveProjectCount(contractorID string) (int, error)
	RecentOrders(contractorID string, limit int) ([]*entity.OrderSummary, error)
	TopSuppliers(limit int) ([]*entity.Supplier, error)
}
