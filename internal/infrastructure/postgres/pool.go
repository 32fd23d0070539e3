package postgres

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/pkg/config"
	"github.com/buildlink/marketplace-api/pkg/logger"
)

// Handle es el acceso al pool de PostgreSQL con ciclo de vida explícito: se
// construye una vez en el arranque y las operaciones lo reciben por
// parámetro. Si la conexión inicial falla, el proceso arranca igual (el login
// y /health siguen sirviendo) y el supervisor reintenta en segundo plano,
// intercambiando el pool de forma atómica al reconectar.
type Handle struct {
	p   atomic.Pointer[pgxpool.Pool]
	cfg config.DBConfig
	log *logger.Logger
}

// NewHandle intenta la conexión inicial. Un fallo no es fatal: devuelve el
// handle vacío y deja la reconexión al supervisor.
func NewHandle(ctx context.Context, cfg config.DBConfig, log *logger.Logger) *Handle {
	h := &Handle{cfg: cfg, log: log.Component("postgres")}
	pool, err := newPool(ctx, cfg)
	if err != nil {
		h.log.Warn().Err(err).Msg("conexión inicial a PostgreSQL falló, se reintentará en segundo plano")
		return h
	}
	h.p.Store(pool)
	return h
}

// Pool devuelve el pool activo o ErrStorageUnavailable si todavía no hay
// conexión.
func (h *Handle) Pool() (*pgxpool.Pool, error) {
	pool := h.p.Load()
	if pool == nil {
		return nil, domain.ErrStorageUnavailable
	}
	return pool, nil
}

// Supervise vigila la salud del pool y lo reconstruye con backoff exponencial
// acotado cuando el ping falla. Pensado para correr como goroutine; termina
// cuando ctx se cancela.
func (h *Handle) Supervise(ctx context.Context) {
	const (
		healthEvery = 15 * time.Second
		backoffMin  = time.Second
		backoffMax  = 30 * time.Second
	)
	backoff := backoffMin
	ticker := time.NewTicker(healthEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pool := h.p.Load()
		if pool != nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := pool.Ping(pingCtx)
			cancel()
			if err == nil {
				backoff = backoffMin
				continue
			}
			h.log.Warn().Err(err).Msg("ping al pool falló, reconectando")
			h.p.Store(nil)
			pool.Close()
		}

		newP, err := newPool(ctx, h.cfg)
		if err != nil {
			h.log.Warn().Err(err).Dur("backoff", backoff).Msg("reconexión fallida")
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > backoffMax {
				backoff = backoffMax
			}
			continue
		}
		h.p.Store(newP)
		backoff = backoffMin
		h.log.Info().Msg("pool de PostgreSQL reconectado")
	}
}

// Close cierra el pool activo si existe.
func (h *Handle) Close() {
	if pool := h.p.Swap(nil); pool != nil {
		pool.Close()
	}
}

// newPool crea un pool de conexiones PostgreSQL con el codec decimal
// registrado en cada conexión.
func newPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
