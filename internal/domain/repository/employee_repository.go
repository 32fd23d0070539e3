package repository

import "github.com/buildlink/marketplace-api/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	Create(emp *entity.Employee) error
	GetByEmpID(empID string) (*entity.Employee, error)
	UpdatePassword(empID, passwordHash string) error
}
