package postgres

import (
	"context"

	"github.com/buildlink/marketplace-api/internal/application/orders"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

// Ensure TxRunner implements orders.TxRunner.
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. La
// transacción toma una conexión dedicada del pool: sus escrituras no son
// visibles para otros requests hasta el Commit, y el Rollback diferido
// garantiza que la conexión nunca vuelve al pool con una transacción abierta.
type TxRunner struct {
	db *Handle
}

// NewTxRunner construye el runner con el handle del pool.
func NewTxRunner(db *Handle) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con el repo de órdenes atado a la tx
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return mapError("begin transaction", err, nil)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit transaction", err, nil)
	}
	return nil
}
