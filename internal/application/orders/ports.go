package orders

import (
	"context"

	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad de trabajo: el repo de órdenes que
// recibe está atado a una transacción dedicada y todo lo escrito se confirma
// o se revierte en bloque. La implementación vive en infrastructure/postgres.
type TxRunner interface {
	Run(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}
