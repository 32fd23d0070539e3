package repository

import "github.com/buildlink/marketplace-api/internal/domain/entity"

// PartnerRepository define el puerto de persistencia para Partner (DIP).
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByUsername(username string) (*entity.Partner, error)
	// GetActiveByUsernameAndRole replica el login legado: username + status
	// Active + rol solicitado, todo en una sola condición.
	GetActiveByUsernameAndRole(username, role string) (*entity.Partner, error)
	UpdatePassword(username, passwordHash string) error
}
