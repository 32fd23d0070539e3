package orders

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain"
)

// ParseCart decodifica y valida el payload del carrito ANTES de abrir la
// unidad de trabajo: un payload que no parsea es ErrInvalidCartFormat y un
// carrito parseable pero vacío es ErrEmptyCart; en ambos casos no se escribe
// nada. Cada línea exige material, qty > 0 y price >= 0.
func ParseCart(cartData string) ([]dto.CartItem, error) {
	if strings.TrimSpace(cartData) == "" {
		return nil, domain.ErrInvalidCartFormat
	}
	var items []dto.CartItem
	if err := json.Unmarshal([]byte(cartData), &items); err != nil {
		return nil, domain.ErrInvalidCartFormat
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, item := range items {
		if item.MaterialID == "" {
			return nil, domain.ErrInvalidCartFormat
		}
		if !item.Qty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidCartFormat
		}
		if item.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidCartFormat
		}
	}
	return items, nil
}

// CartTotal devuelve Σ(qty × price). Este valor calculado, y nunca un total
// enviado por el cliente, es el que se persiste en la cabecera.
func CartTotal(items []dto.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Qty.Mul(item.Price))
	}
	return total
}
