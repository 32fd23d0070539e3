package repository

import "github.com/buildlink/marketplace-api/internal/domain/entity"

// ContractorRepository define el puerto de persistencia para Contractor (DIP).
type ContractorRepository interface {
	Create(contractor *entity.Contractor) error
	GetByID(id string) (*entity.Contractor, error)
	GetByEmail(email string) (*entity.Contractor, error)
	UpdatePassword(email, passwordHash string) error
}
