package dto

import "time"

// LoginRequest login legado: la etiqueta de rol decide contra qué tabla se
// autentica (員工/employee, Contractor, Supplier).
type LoginRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ContractorLoginRequest login del marketplace nuevo: por email.
type ContractorLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPartnerRequest alta de contratista/proveedor legado.
type RegisterPartnerRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	Role         string `json:"role"` // Contractor | Supplier
}

// RegisterContractorRequest alta de constructor del esquema nuevo.
type RegisterContractorRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// ResetPasswordRequest restablecimiento de secreto. La etiqueta de rol se
// resuelve con el mismo mapa cerrado del login.
type ResetPasswordRequest struct {
	Role        string `json:"role"`
	Key         string `json:"key"`
	NewPassword string `json:"new_password"`
}

// SessionResponse resultado de un login: token firmado + superficie propia.
type SessionResponse struct {
	Token string `json:"token"`
	Kind  string `json:"kind"`
	Home  string `json:"home"`
}

// PrincipalResponse perfil resuelto de la identidad actual (consulta fresca,
// nunca cacheada en el token).
type PrincipalResponse struct {
	Kind        string `json:"kind"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Role        string `json:"role,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ContractorResponse alta de contratista confirmada.
type ContractorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// PartnerResponse alta de partner confirmada.
type PartnerResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	CompanyName  string    `json:"company_name"`
	ContactEmail string    `json:"contact_email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
