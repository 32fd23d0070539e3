package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierResponse proveedor para listados y búsqueda.
type SupplierResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// MaterialOfferResponse oferta de material con precio y stock informativo.
type MaterialOfferResponse struct {
	MaterialID     string          `json:"material_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	AvailableStock decimal.Decimal `json:"available_stock"`
}

// SupplierDetailResponse página de compra: proveedor + ofertas + proyectos
// abiertos del contratista para el formulario de orden.
type SupplierDetailResponse struct {
	Supplier SupplierResponse        `json:"supplier"`
	Offers   []MaterialOfferResponse `json:"offers"`
	Projects []ProjectResponse       `json:"projects"`
}

// CreateProjectRequest alta de proyecto.
type CreateProjectRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
}

// ProjectResponse proyecto del contratista.
type ProjectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	StartDate time.Time `json:"start_date"`
	Status    string    `json:"status"`
}

// ProjectDetailResponse proyecto con sus órdenes.
type ProjectDetailResponse struct {
	Project ProjectResponse `json:"project"`
	Orders  []OrderResponse `json:"orders"`
}
