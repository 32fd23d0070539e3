package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea del carrito tal como llega del front: id de material,
// cantidad y precio unitario de la oferta mostrada.
type CartItem struct {
	MaterialID string          `json:"id"`
	Qty        decimal.Decimal `json:"qty"`
	Price      decimal.Decimal `json:"price"`
}

// CreateOrderRequest payload de creación de orden. CartData llega como string
// JSON (formato de wire del front legado); el total lo calcula siempre el
// servidor.
type CreateOrderRequest struct {
	ProjectID    string `json:"project_id"`
	DeliveryDate string `json:"delivery_date"` // YYYY-MM-DD, opcional
	CartData     string `json:"cart_data"`
}

// CreateOrderResponse identificador de la orden creada y a dónde navegar.
type CreateOrderResponse struct {
	POID       string          `json:"po_id"`
	Total      decimal.Decimal `json:"total_amount"`
	ProjectURL string          `json:"project_url"`
}

// OrderItemResponse línea de orden con material resuelto.
type OrderItemResponse struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderResponse orden con nombres resueltos.
type OrderResponse struct {
	ID           string              `json:"id"`
	ProjectID    string              `json:"project_id"`
	ProjectName  string              `json:"project_name"`
	SupplierID   string              `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Status       string              `json:"status"`
	OrderDate    time.Time           `json:"order_date"`
	DeliveryDate *time.Time          `json:"delivery_date,omitempty"`
	Items        []OrderItemResponse `json:"items,omitempty"`
}

// SupplierHistoryGroup historial agrupado por proveedor con total gastado.
type SupplierHistoryGroup struct {
	SupplierName string          `json:"supplier_name"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	Orders       []OrderResponse `json:"orders"`
}
