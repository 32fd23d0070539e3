package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación de las agregaciones del dashboard sobre
// PostgreSQL. Solo lectura.
type AnalyticsRepo struct {
	db *Handle
}

// NewAnalyticsRepository construye el adaptador de agregaciones.
func NewAnalyticsRepository(db *Handle) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// TotalSpend devuelve la suma de TotalAmount de todas las órdenes del
// contratista (cero si no tiene).
func (r *AnalyticsRepo) TotalSpend(contractorID string) (decimal.Decimal, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return decimal.Zero, err
	}
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM purchase_orders WHERE contractor_id = $1`
	var total decimal.Decimal
	if err := pool.QueryRow(context.Background(), query, contractorID).Scan(&total); err != nil {
		return decimal.Zero, mapError("total spend", err, nil)
	}
	return total, nil
}

// ActiveOrderCount cuenta órdenes que no están Completed ni Delivered.
func (r *AnalyticsRepo) ActiveOrderCount(contractorID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM purchase_orders
		WHERE contractor_id = $1 AND status <> 'Completed' AND status <> 'Delivered'`
	return r.count(query, contractorID)
}

// ActiveProjectCount cuenta proyectos que no están Completed.
func (r *AnalyticsRepo) ActiveProjectCount(contractorID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM projects
		WHERE contractor_id = $1 AND status <> 'Completed'`
	return r.count(query, contractorID)
}

// RecentOrders devuelve las últimas órdenes con nombres de proyecto y
// proveedor resueltos.
func (r *AnalyticsRepo) RecentOrders(contractorID string, limit int) ([]*entity.OrderSummary, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `
		SELECT po.id, po.contractor_id, po.project_id, po.supplier_id, po.total_amount,
		       po.status, po.order_date, po.delivery_date, p.name, s.name
		FROM purchase_orders po
		JOIN projects p ON po.project_id = p.id
		JOIN suppliers s ON po.supplier_id = s.id
		WHERE po.contractor_id = $1
		ORDER BY po.order_date DESC
		LIMIT $2`
	rows, err := pool.Query(context.Background(), query, contractorID, limit)
	if err != nil {
		return nil, mapError("recent orders", err, nil)
	}
	defer rows.Close()

	var orders []*entity.OrderSummary
	for rows.Next() {
		var o entity.OrderSummary
		if err := rows.Scan(
			&o.ID, &o.ContractorID, &o.ProjectID, &o.SupplierID, &o.TotalAmount,
			&o.Status, &o.OrderDate, &o.DeliveryDate, &o.ProjectName, &o.SupplierName,
		); err != nil {
			return nil, mapError("scan recent order", err, nil)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("recent orders", err, nil)
	}
	return orders, nil
}

// TopSuppliers devuelve los proveedores con más órdenes recibidas.
func (r *AnalyticsRepo) TopSuppliers(limit int) ([]*entity.Supplier, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `
		SELECT s.id, s.name, s.email, s.phone_number, s.address, s.created_at
		FROM suppliers s
		LEFT JOIN purchase_orders po ON po.supplier_id = s.id
		GROUP BY s.id, s.name, s.email, s.phone_number, s.address, s.created_at
		ORDER BY COUNT(po.id) DESC, s.name
		LIMIT $1`
	rows, err := pool.Query(context.Background(), query, limit)
	if err != nil {
		return nil, mapError("top suppliers", err, nil)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.Address, &s.CreatedAt); err != nil {
			return nil, mapError("scan top supplier", err, nil)
		}
		suppliers = append(suppliers, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("top suppliers", err, nil)
	}
	return suppliers, nil
}

func (r *AnalyticsRepo) count(query string, args ...any) (int, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return 0, err
	}
	var n int
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, mapError("count", err, nil)
	}
	return n, nil
}
