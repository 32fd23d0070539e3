package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementación del puerto PartnerRepository sobre PostgreSQL.
type PartnerRepo struct {
	db *Handle
}

// NewPartnerRepository construye el adaptador de persistencia para partners.
func NewPartnerRepository(db *Handle) *PartnerRepo {
	return &PartnerRepo{db: db}
}

const partnerColumns = `id, username, password_hash, company_name, contact_email, role, status, created_at`

// Create persiste un nuevo partner. Devuelve ErrDuplicateIdentity si el
// username ya existe; no queda fila parcial.
func (r *PartnerRepo) Create(partner *entity.Partner) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	query := `
		INSERT INTO partners (id, username, password_hash, company_name, contact_email, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = pool.Exec(context.Background(), query,
		partner.ID, partner.Username, partner.PasswordHash, partner.CompanyName,
		partner.ContactEmail, partner.Role, partner.Status, partner.CreatedAt,
	)
	if err != nil {
		return mapError("insert partner", err, domain.ErrDuplicateIdentity)
	}
	return nil
}

// GetByUsername obtiene un partner por username. (nil, nil) si no existe.
func (r *PartnerRepo) GetByUsername(username string) (*entity.Partner, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE username = $1`
	return r.scanOne(pool.QueryRow(context.Background(), query, username), "get partner by username")
}

// GetActiveByUsernameAndRole replica la condición del login legado: username,
// status Active y el rol solicitado, en una sola consulta.
func (r *PartnerRepo) GetActiveByUsernameAndRole(username, role string) (*entity.Partner, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + partnerColumns + `
		FROM partners WHERE username = $1 AND status = 'Active' AND role = $2`
	return r.scanOne(pool.QueryRow(context.Background(), query, username, role), "get active partner")
}

// UpdatePassword reemplaza el hash del secreto (tabla y columnas fijas).
func (r *PartnerRepo) UpdatePassword(username, passwordHash string) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	tag, err := pool.Exec(context.Background(),
		`UPDATE partners SET password_hash = $1 WHERE username = $2`,
		passwordHash, username,
	)
	if err != nil {
		return mapError("update partner password", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartnerRepo) scanOne(row pgx.Row, op string) (*entity.Partner, error) {
	var p entity.Partner
	err := row.Scan(
		&p.ID, &p.Username, &p.PasswordHash, &p.CompanyName,
		&p.ContactEmail, &p.Role, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err, nil)
	}
	return &p, nil
}
