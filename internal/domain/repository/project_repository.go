package repository

import "github.com/buildlink/marketplace-api/internal/domain/entity"

// ProjectRepository define el puerto de persistencia para Project (DIP).
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	// ListByContractor devuelve los proyectos del contratista, más recientes
	// primero (por StartDate).
	ListByContractor(contractorID string) ([]*entity.Project, error)
	// ListOpenByContractor excluye los Completed; alimenta el formulario de
	// compra.
	ListOpenByContractor(contractorID string) ([]*entity.Project, error)
}
