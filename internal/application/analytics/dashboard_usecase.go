package analytics

import (
	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

// Límites del dashboard heredados de la vista original.
const (
	recentOrdersLimit = 5
	topSuppliersLimit = 3
)

// DashboardUseCase agrega las métricas del dashboard del contratista. Todo es
// solo lectura; consume la identidad ya validada por la sesión.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Dashboard arma la vista: gasto total, conteos activos, últimas órdenes y
// principales proveedores.
func (uc *DashboardUseCase) Dashboard(contractorID string) (*dto.DashboardResponse, error) {
	totalSpent, err := uc.repo.TotalSpend(contractorID)
	if err != nil {
		return nil, err
	}
	activeOrders, err := uc.repo.ActiveOrderCount(contractorID)
	if err != nil {
		return nil, err
	}
	activeProjects, err := uc.repo.ActiveProjectCount(contractorID)
	if err != nil {
		return nil, err
	}
	recent, err := uc.repo.RecentOrders(contractorID, recentOrdersLimit)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopSuppliers(topSuppliersLimit)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		TotalSpent:         totalSpent,
		ActiveOrdersCount:  activeOrders,
		ActiveProjectCount: activeProjects,
	}
	for _, o := range recent {
		out.RecentOrders = append(out.RecentOrders, dto.OrderResponse{
			ID:           o.ID,
			ProjectID:    o.ProjectID,
			ProjectName:  o.ProjectName,
			SupplierID:   o.SupplierID,
			SupplierName: o.SupplierName,
			TotalAmount:  o.TotalAmount,
			Status:       o.Status,
			OrderDate:    o.OrderDate,
			DeliveryDate: o.DeliveryDate,
		})
	}
	for _, s := range top {
		out.TopSuppliers = append(out.TopSuppliers, dto.SupplierResponse{
			ID:          s.ID,
			Name:        s.Name,
			Email:       s.Email,
			PhoneNumber: s.PhoneNumber,
			Address:     s.Address,
		})
	}
	return out, nil
}
