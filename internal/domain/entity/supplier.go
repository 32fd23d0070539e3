package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier es una entidad de catálogo independiente: vende cero o más
// materiales con precio y stock propios.
type Supplier struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	CreatedAt   time.Time
}

// Material es un ítem del catálogo global (el precio vive en la oferta de
// cada proveedor, no aquí).
type Material struct {
	ID       string
	Name     string
	Category string
	Unit     string
}

// SupplierMaterial es la oferta de un proveedor para un material. El stock es
// informativo en el flujo de compra: no se descuenta al crear una orden.
type SupplierMaterial struct {
	SupplierID     string
	MaterialID     string
	PricePerUnit   decimal.Decimal
	AvailableStock decimal.Decimal
}

// MaterialOffer es la vista de compra: material + condiciones del proveedor.
type MaterialOffer struct {
	MaterialID     string
	MaterialName   string
	Category       string
	Unit           string
	PricePerUnit   decimal.Decimal
	AvailableStock decimal.Decimal
}
