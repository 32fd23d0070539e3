package entity

import "time"

// Roles válidos para Partner (rol legado del marketplace).
const (
	PartnerRoleContractor = "Contractor"
	PartnerRoleSupplier   = "Supplier"
)

// Estados válidos para Partner. Solo los Active pueden iniciar sesión.
const (
	PartnerStatusActive   = "Active"
	PartnerStatusInactive = "Inactive"
)

// Partner representa a un contratista/proveedor externo (esquema legado).
// Se autentica por username y el rol solicitado debe coincidir con el
// almacenado.
type Partner struct {
	ID           string
	Username     string
	PasswordHash string
	CompanyName  string
	ContactEmail string
	Role         string // Contractor | Supplier
	Status       string // Active | Inactive
	CreatedAt    time.Time
}
