package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para PurchaseOrder.
const (
	POStatusPending   = "Pending"
	POStatusConfirmed = "Confirmed"
	POStatusShipped   = "Shipped"
	POStatusDelivered = "Delivered"
	POStatusCompleted = "Completed"
)

// PurchaseOrder es la cabecera de una orden de compra. Invariante: la
// cabecera existe si y solo si existe al menos un POItem que la referencia;
// el par se crea junto o no se crea (unidad de trabajo en orders).
// TotalAmount siempre es el valor calculado en el servidor, nunca el que
// envíe el cliente.
type PurchaseOrder struct {
	ID           string
	ContractorID string
	ProjectID    string
	SupplierID   string
	TotalAmount  decimal.Decimal
	Status       string
	OrderDate    time.Time
	DeliveryDate *time.Time
}

// POItem es una línea de la orden. Quantity > 0, UnitPrice >= 0.
type POItem struct {
	ID         string
	POID       string
	MaterialID string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
}

// Subtotal devuelve Quantity × UnitPrice.
func (i POItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// OrderSummary es la orden unida con nombres de proyecto y proveedor para
// listados e historial.
type OrderSummary struct {
	PurchaseOrder
	ProjectName  string
	SupplierName string
	Items        []POItemDetail
}

// POItemDetail es una línea con el nombre del material resuelto.
type POItemDetail struct {
	POItem
	MaterialName string
}
