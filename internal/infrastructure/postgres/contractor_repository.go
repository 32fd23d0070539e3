package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

var _ repository.ContractorRepository = (*ContractorRepo)(nil)

// ContractorRepo implementación del puerto ContractorRepository sobre
// PostgreSQL.
type ContractorRepo struct {
	db *Handle
}

// NewContractorRepository construye el adaptador de persistencia para
// contratistas.
func NewContractorRepository(db *Handle) *ContractorRepo {
	return &ContractorRepo{db: db}
}

const contractorColumns = `id, name, email, password_hash, phone_number, address, created_at, updated_at`

// Create persiste un nuevo contratista. Devuelve ErrDuplicateIdentity si el
// email ya existe.
func (r *ContractorRepo) Create(c *entity.Contractor) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	query := `
		INSERT INTO contractors (id, name, email, password_hash, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = pool.Exec(context.Background(), query,
		c.ID, c.Name, c.Email, c.PasswordHash, c.PhoneNumber, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapError("insert contractor", err, domain.ErrDuplicateIdentity)
	}
	return nil
}

// GetByID obtiene un contratista por ID. (nil, nil) si no existe.
func (r *ContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE id = $1`
	return r.scanOne(pool.QueryRow(context.Background(), query, id), "get contractor by id")
}

// GetByEmail obtiene un contratista por email (clave natural de login).
func (r *ContractorRepo) GetByEmail(email string) (*entity.Contractor, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE email = $1`
	return r.scanOne(pool.QueryRow(context.Background(), query, email), "get contractor by email")
}

// UpdatePassword reemplaza el hash del secreto (tabla y columnas fijas).
func (r *ContractorRepo) UpdatePassword(email, passwordHash string) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	tag, err := pool.Exec(context.Background(),
		`UPDATE contractors SET password_hash = $1, updated_at = $2 WHERE email = $3`,
		passwordHash, time.Now(), email,
	)
	if err != nil {
		return mapError("update contractor password", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContractorRepo) scanOne(row pgx.Row, op string) (*entity.Contractor, error) {
	var c entity.Contractor
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.PhoneNumber, &c.Address,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err, nil)
	}
	return &c, nil
}
