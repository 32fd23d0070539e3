package repository

import "github.com/buildlink/marketplace-api/internal/domain/entity"

// OrderRepository define el puerto de escritura de órdenes. Las dos escrituras
// (cabecera + líneas) solo se invocan dentro de la unidad de trabajo del
// TxRunner: fuera de una transacción no hay forma de honrar la atomicidad.
type OrderRepository interface {
	CreateHeader(po *entity.PurchaseOrder) error
	CreateItem(item *entity.POItem) error
}

// OrderQueryRepository define las lecturas de órdenes (historial y detalle).
type OrderQueryRepository interface {
	// GetSummary devuelve la orden con nombres de proyecto/proveedor y sus
	// líneas con nombre de material.
	GetSummary(poID string) (*entity.OrderSummary, error)
	// ListByContractor devuelve el historial del contratista, más recientes
	// primero, con nombres resueltos.
	ListByContractor(contractorID string) ([]*entity.OrderSummary, error)
	// ListByProject devuelve las órdenes de un proyecto con sus líneas.
	ListByProject(projectID string) ([]*entity.OrderSummary, error)
}
