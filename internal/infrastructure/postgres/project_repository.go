package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	db *Handle
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(db *Handle) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `id, contractor_id, name, location, start_date, status, created_at`

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(p *entity.Project) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	query := `
		INSERT INTO projects (id, contractor_id, name, location, start_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = pool.Exec(context.Background(), query,
		p.ID, p.ContractorID, p.Name, p.Location, p.StartDate, p.Status, p.CreatedAt,
	)
	if err != nil {
		return mapError("insert project", err, nil)
	}
	return nil
}

// GetByID obtiene un proyecto por ID. (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	var p entity.Project
	err = pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ContractorID, &p.Name, &p.Location, &p.StartDate, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get project by id", err, nil)
	}
	return &p, nil
}

// ListByContractor devuelve los proyectos del contratista, más recientes
// primero.
func (r *ProjectRepo) ListByContractor(contractorID string) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects WHERE contractor_id = $1 ORDER BY start_date DESC`
	return r.list(query, contractorID)
}

// ListOpenByContractor devuelve los proyectos no Completed del contratista.
func (r *ProjectRepo) ListOpenByContractor(contractorID string) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects WHERE contractor_id = $1 AND status <> 'Completed' ORDER BY start_date DESC`
	return r.list(query, contractorID)
}

func (r *ProjectRepo) list(query string, args ...any) ([]*entity.Project, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, mapError("list projects", err, nil)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.ContractorID, &p.Name, &p.Location, &p.StartDate, &p.Status, &p.CreatedAt); err != nil {
			return nil, mapError("scan project", err, nil)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list projects", err, nil)
	}
	return projects, nil
}
