package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	db *Handle
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(db *Handle) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(emp *entity.Employee) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	query := `
		INSERT INTO employees (emp_id, emp_password, emp_name, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err = pool.Exec(context.Background(), query,
		emp.EmpID, emp.PasswordHash, emp.Name, emp.CreatedAt,
	)
	if err != nil {
		return mapError("insert employee", err, domain.ErrDuplicateIdentity)
	}
	return nil
}

// GetByEmpID obtiene un empleado por emp_id. (nil, nil) si no existe.
func (r *EmployeeRepo) GetByEmpID(empID string) (*entity.Employee, error) {
	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}
	query := `
		SELECT emp_id, emp_password, emp_name, created_at
		FROM employees WHERE emp_id = $1`
	var e entity.Employee
	err = pool.QueryRow(context.Background(), query, empID).Scan(
		&e.EmpID, &e.PasswordHash, &e.Name, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get employee by emp_id", err, nil)
	}
	return &e, nil
}

// UpdatePassword reemplaza el hash del secreto. La tabla y las columnas son
// fijas: ningún identificador externo participa en el texto SQL.
func (r *EmployeeRepo) UpdatePassword(empID, passwordHash string) error {
	pool, err := r.db.Pool()
	if err != nil {
		return err
	}
	tag, err := pool.Exec(context.Background(),
		`UPDATE employees SET emp_password = $1 WHERE emp_id = $2`,
		passwordHash, empID,
	)
	if err != nil {
		return mapError("update employee password", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
