package repository

import "github.com/buildlink/marketplace-api/internal/domain/entity"

// SupplierRepository define el puerto de catálogo de proveedores (DIP).
type SupplierRepository interface {
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	// SearchByName filtra por nombre de proveedor (LIKE, case-insensitive).
	SearchByName(query string) ([]*entity.Supplier, error)
	// SearchByMaterial devuelve los proveedores (DISTINCT) que ofrecen un
	// material cuyo nombre coincide con query.
	SearchByMaterial(query string) ([]*entity.Supplier, error)
	// ListOffers devuelve los materiales que vende un proveedor con precio y
	// stock informativo.
	ListOffers(supplierID string) ([]*entity.MaterialOffer, error)

	// Altas de catálogo (CLI de administración).
	CreateSupplier(s *entity.Supplier) error
	CreateMaterial(m *entity.Material) error
	CreateOffer(o *entity.SupplierMaterial) error
}
