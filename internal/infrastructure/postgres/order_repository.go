package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.OrderQueryRepository = (*OrderQueryRepo)(nil)

// OrderRepo es el lado de escritura de órdenes, siempre atado a una
// transacción del TxRunner: la cabecera y sus líneas se confirman juntas o
// no se confirman.
type OrderRepo struct {
	ctx context.Context
	tx  pgx.Tx
}

// NewOrderRepository construye el repo de escritura sobre la transacción.
func NewOrderRepository(ctx context.Context, tx pgx.Tx) *OrderRepo {
	return &OrderRepo{ctx: ctx, tx: tx}
}

// CreateHeader inserta la cabecera de la orden dentro de la transacción.
func (r *OrderRepo) CreateHeader(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, contractor_id, project_id, supplier_id, total_amount, status, order_date, delivery_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.tx.Exec(r.ctx, query,
		po.ID, po.ContractorID, po.ProjectID, po.SupplierID,
		po.TotalAmount, po.Status, po.OrderDate, po.DeliveryDate,
	)
	if err != nil {
		return mapError("insert purchase order", err, nil)
	}
	return nil
}

// CreateItem inserta una línea de la orden dentro de la transacción.
func (r *OrderRepo) CreateItem(item *entity.POItem) error {
	query := `
		INSERT INTO po_items (id, po_id, material_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.tx.Exec(r.ctx, query,
		item.ID, item.POID, item.MaterialID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return mapError("insert po item", err, nil)
	}
	return nil
}

// OrderQueryRepo es el lado de lectura de órdenes (pool compartido).
type OrderQueryRepo struct {
	db *Handle
}

// NewOrderQueryRepository construye el adaptador de lectura de órdenes.
func NewOrderQueryRepository(db *Handle) *OrderQueryRepo {
	return &OrderQueryRepo{db: db}
}

const orderSummaryColumns = `
	po.id, po.contractor_id, po.project_id, po.supplier_id, po.total_amount,
	po.status, po.order_date, po.delivery_date, p.name, s.name`

// GetSummary devuelve la orden con nombres resueltos y sus líneas.
func (r *OrderQueryRepo) GetSummary(poID string) (*entity.OrderSummary, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + orderSummaryColumns + `
		FROM purchase_orders po
		JOIN projects p ON po.project_id = p.id
		JOIN suppliers s ON po.supplier_id = s.id
		WHERE po.id = $1`
	var o entity.OrderSummary
	err = pool.QueryRow(context.Background(), query, poID).Scan(
		&o.ID, &o.ContractorID, &o.ProjectID, &o.SupplierID, &o.TotalAmount,
		&o.Status, &o.OrderDate, &o.DeliveryDate, &o.ProjectName, &o.SupplierName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError("get order summary", err, nil)
	}
	items, err := r.itemsFor(pool, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// ListByContractor devuelve el historial del contratista, más recientes
// primero.
func (r *OrderQueryRepo) ListByContractor(contractorID string) ([]*entity.OrderSummary, error) {
	query := `
		SELECT ` + orderSummaryColumns + `
		FROM purchase_orders po
		JOIN projects p ON po.project_id = p.id
		JOIN suppliers s ON po.supplier_id = s.id
		WHERE po.contractor_id = $1
		ORDER BY po.order_date DESC`
	return r.list(query, false, contractorID)
}

// ListByProject devuelve las órdenes de un proyecto con sus líneas.
func (r *OrderQueryRepo) ListByProject(projectID string) ([]*entity.OrderSummary, error) {
	query := `
		SELECT ` + orderSummaryColumns + `
		FROM purchase_orders po
		JOIN projects p ON po.project_id = p.id
		JOIN suppliers s ON po.supplier_id = s.id
		WHERE po.project_id = $1
		ORDER BY po.order_date DESC`
	return r.list(query, true, projectID)
}

func (r *OrderQueryRepo) list(query string, withItems bool, args ...any) ([]*entity.OrderSummary, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, mapError("list orders", err, nil)
	}
	defer rows.Close()

	var orders []*entity.OrderSummary
	for rows.Next() {
		var o entity.OrderSummary
		if err := rows.Scan(
			&o.ID, &o.ContractorID, &o.ProjectID, &o.SupplierID, &o.TotalAmount,
			&o.Status, &o.OrderDate, &o.DeliveryDate, &o.ProjectName, &o.SupplierName,
		); err != nil {
			return nil, mapError("scan order", err, nil)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list orders", err, nil)
	}
	if withItems {
		for _, o := range orders {
			items, err := r.itemsFor(pool, o.ID)
			if err != nil {
				return nil, err
			}
			o.Items = items
		}
	}
	return orders, nil
}

func (r *OrderQueryRepo) itemsFor(pool querier, poID string) ([]entity.POItemDetail, error) {
	query := `
		SELECT i.id, i.po_id, i.material_id, i.quantity, i.unit_price, m.name
		FROM po_items i
		JOIN materials m ON i.material_id = m.id
		WHERE i.po_id = $1
		ORDER BY m.name`
	rows, err := pool.Query(context.Background(), query, poID)
	if err != nil {
		return nil, mapError("list po items", err, nil)
	}
	defer rows.Close()

	var items []entity.POItemDetail
	for rows.Next() {
		var it entity.POItemDetail
		if err := rows.Scan(&it.ID, &it.POID, &it.MaterialID, &it.Quantity, &it.UnitPrice, &it.MaterialName); err != nil {
			return nil, mapError("scan po item", err, nil)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list po items", err, nil)
	}
	return items, nil
}
