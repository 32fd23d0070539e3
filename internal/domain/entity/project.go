package entity

import "time"

// Estados válidos para Project.
const (
	ProjectStatusPlanning   = "Planning"
	ProjectStatusInProgress = "InProgress"
	ProjectStatusOnHold     = "OnHold"
	ProjectStatusCompleted  = "Completed"
)

// Project es una obra de un Contractor. Las órdenes de compra siempre cuelgan
// de un proyecto.
type Project struct {
	ID           string
	ContractorID string
	Name         string
	Location     string
	StartDate    time.Time
	Status       string
	CreatedAt    time.Time
}
