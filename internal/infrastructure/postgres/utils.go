package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/buildlink/marketplace-api/internal/domain"
)

// querier es el subconjunto de lectura común a pgxpool.Pool y pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// isUniqueViolation verifica si un error es una violación de constraint único
// (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isConnectivity verifica si el error viene de la capa de red y no del motor
// (conexión caída, DNS, timeout). Estos se degradan a ErrStorageUnavailable.
func isConnectivity(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// mapError traduce un error de pgx a la taxonomía de dominio, envolviendo con
// op para trazabilidad. onDuplicate es el error de dominio a devolver en
// 23505.
func mapError(op string, err error, onDuplicate error) error {
	switch {
	case onDuplicate != nil && isUniqueViolation(err):
		return onDuplicate
	case isConnectivity(err):
		return fmt.Errorf("%s: %w", op, domain.ErrStorageUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
