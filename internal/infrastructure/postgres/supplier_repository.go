package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	db *Handle
}

// NewSupplierRepository construye el adaptador de catálogo de proveedores.
func NewSupplierRepository(db *Handle) *SupplierRepo {
	return &SupplierRepo{db: db}
}

const supplierColumns = `id, name, email, phone_number, address, created_at`

// GetByID obtiene un proveedor por ID. (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err = pool.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.Address, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get supplier by id", err, nil)
	}
	return &s, nil
}

// List devuelve todos los proveedores del catálogo.
func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	return r.listQuery(`SELECT `+supplierColumns+` FROM suppliers ORDER BY name`, nil)
}

// SearchByName filtra por nombre de proveedor (ILIKE). El patrón viaja como
// parámetro: nada del input del usuario toca el texto SQL.
func (r *SupplierRepo) SearchByName(query string) ([]*entity.Supplier, error) {
	sql := `SELECT ` + supplierColumns + ` FROM suppliers WHERE name ILIKE $1 ORDER BY name`
	return r.listQuery(sql, []any{"%" + query + "%"})
}

// SearchByMaterial devuelve los proveedores (DISTINCT) que ofrecen un material
// cuyo nombre coincide con query.
func (r *SupplierRepo) SearchByMaterial(query string) ([]*entity.Supplier, error) {
	sql := `
		SELECT DISTINCT s.id, s.name, s.email, s.phone_number, s.address, s.created_at
		FROM suppliers s
		JOIN supplier_materials sm ON s.id = sm.supplier_id
		JOIN materials m ON sm.material_id = m.id
		WHERE m.name ILIKE $1
		ORDER BY s.name`
	return r.listQuery(sql, []any{"%" + query + "%"})
}

// ListOffers devuelve los materiales que vende un proveedor con precio y
// stock informativo.
func (r *SupplierRepo) ListOffers(supplierID string) ([]*entity.MaterialOffer, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `
		SELECT m.id, m.name, m.category, m.unit, sm.price_per_unit, sm.available_stock
		FROM supplier_materials sm
		JOIN materials m ON sm.material_id = m.id
		WHERE sm.supplier_id = $1
		ORDER BY m.name`
	rows, err := pool.Query(context.Background(), query, supplierID)
	if err != nil {
		return nil, mapError("list supplier offers", err, nil)
	}
	defer rows.Close()

	var offers []*entity.MaterialOffer
	for rows.Next() {
		var o entity.MaterialOffer
		if err := rows.Scan(&o.MaterialID, &o.MaterialName, &o.Category, &o.Unit, &o.PricePerUnit, &o.AvailableStock); err != nil {
			return nil, mapError("scan supplier offer", err, nil)
		}
		offers = append(offers, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list supplier offers", err, nil)
	}
	return offers, nil
}

// CreateSupplier da de alta un proveedor (CLI de administración).
func (r *SupplierRepo) CreateSupplier(s *entity.Supplier) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	_, err = pool.Exec(context.Background(),
		`INSERT INTO suppliers (id, name, email, phone_number, address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Email, s.PhoneNumber, s.Address, s.CreatedAt,
	)
	if err != nil {
		return mapError("insert supplier", err, domain.ErrDuplicateIdentity)
	}
	return nil
}

// CreateMaterial da de alta un material del catálogo global.
func (r *SupplierRepo) CreateMaterial(m *entity.Material) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	_, err = pool.Exec(context.Background(),
		`INSERT INTO materials (id, name, category, unit) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Name, m.Category, m.Unit,
	)
	if err != nil {
		return mapError("insert material", err, domain.ErrDuplicateIdentity)
	}
	return nil
}

// CreateOffer vincula un material a un proveedor con precio y stock.
func (r *SupplierRepo) CreateOffer(o *entity.SupplierMaterial) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	_, err = pool.Exec(context.Background(),
		`INSERT INTO supplier_materials (supplier_id, material_id, price_per_unit, available_stock)
		 VALUES ($1, $2, $3, $4)`,
		o.SupplierID, o.MaterialID, o.PricePerUnit, o.AvailableStock,
	)
	if err != nil {
		return mapError("insert supplier material", err, domain.ErrDuplicateIdentity)
	}
	return nil
}

func (r *SupplierRepo) listQuery(sql string, args []any) ([]*entity.Supplier, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, mapError("list suppliers", err, nil)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.Address, &s.CreatedAt); err != nil {
			return nil, mapError("scan supplier", err, nil)
		}
		suppliers = append(suppliers, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list suppliers", err, nil)
	}
	return suppliers, nil
}
