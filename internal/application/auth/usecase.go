package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
	"github.com/buildlink/marketplace-api/pkg/token"
)

// TokenConfig configuración para emisión de tokens de sesión.
type TokenConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidad: autenticación por variante, registro,
// restablecimiento de secreto y resolución del principal.
type AuthUseCase struct {
	employeeRepo   repository.EmployeeRepository
	partnerRepo    repository.PartnerRepository
	contractorRepo repository.ContractorRepository
	tokenCfg       TokenConfig
}

// NewAuthUseCase construye el caso de uso de identidad.
func NewAuthUseCase(
	employeeRepo repository.EmployeeRepository,
	partnerRepo repository.PartnerRepository,
	contractorRepo repository.ContractorRepository,
	tokenCfg TokenConfig,
) *AuthUseCase {
	return &AuthUseCase{
		employeeRepo:   employeeRepo,
		partnerRepo:    partnerRepo,
		contractorRepo: contractorRepo,
		tokenCfg:       tokenCfg,
	}
}

// Authenticate verifica (variante, clave natural, secreto) contra la tabla de
// la variante y emite el token de sesión. El token resultante reemplaza
// cualquier identidad anterior de la cookie: una sesión lleva a lo sumo una
// identidad viva. Un fallo de credenciales nunca revela qué campo falló.
func (uc *AuthUseCase) Authenticate(kind entity.PrincipalKind, partnerRole, key, secret string) (*dto.SessionResponse, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if key == "" || secret == "" {
		return nil, domain.ErrInvalidInput
	}

	var hash string
	switch kind {
	case entity.KindEmployee:
		emp, err := uc.employeeRepo.GetByEmpID(key)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrInvalidCredentials
		}
		hash = emp.PasswordHash
	case entity.KindPartner:
		if partnerRole != entity.PartnerRoleContractor && partnerRole != entity.PartnerRoleSupplier {
			return nil, domain.ErrInvalidRole
		}
		// La consulta ya exige status Active y el rol solicitado: una cuenta
		// inactiva o con otro rol produce el mismo error genérico.
		partner, err := uc.partnerRepo.GetActiveByUsernameAndRole(key, partnerRole)
		if err != nil {
			return nil, err
		}
		if partner == nil {
			return nil, domain.ErrInvalidCredentials
		}
		hash = partner.PasswordHash
	case entity.KindContractor:
		contractor, err := uc.contractorRepo.GetByEmail(key)
		if err != nil {
			return nil, err
		}
		if contractor == nil {
			return nil, domain.ErrInvalidCredentials
		}
		hash = contractor.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Generate(uc.tokenCfg.Secret, string(kind), key, uc.tokenCfg.Issuer, uc.tokenCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Token: signed,
		Kind:  string(kind),
		Home:  kind.HomePath(),
	}, nil
}

// ResolvePrincipal resuelve el registro completo de la identidad con una
// consulta fresca (el token guarda solo la clave natural, así que las
// ediciones de perfil son visibles de inmediato). Un token estructuralmente
// válido sin fila correspondiente es una sesión obsoleta: se fuerza
// re-autenticación, no un error duro.
func (uc *AuthUseCase) ResolvePrincipal(kind entity.PrincipalKind, key string) (*entity.Principal, error) {
	switch kind {
	case entity.KindEmployee:
		emp, err := uc.employeeRepo.GetByEmpID(key)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrStaleSession
		}
		return &entity.Principal{Kind: kind, Employee: emp}, nil
	case entity.KindPartner:
		partner, err := uc.partnerRepo.GetByUsername(key)
		if err != nil {
			return nil, err
		}
		if partner == nil {
			return nil, domain.ErrStaleSession
		}
		return &entity.Principal{Kind: kind, Partner: partner}, nil
	case entity.KindContractor:
		contractor, err := uc.contractorRepo.GetByEmail(key)
		if err != nil {
			return nil, err
		}
		if contractor == nil {
			return nil, domain.ErrStaleSession
		}
		return &entity.Principal{Kind: kind, Contractor: contractor}, nil
	}
	return nil, domain.ErrInvalidRole
}

// RegisterPartner crea un partner legado: hashea el secreto y persiste.
// Los nuevos partners arrancan Active. Devuelve ErrDuplicateIdentity si el
// username ya existe; no queda fila parcial.
func (uc *AuthUseCase) RegisterPartner(in dto.RegisterPartnerRequest) (*dto.PartnerResponse, error) {
	if in.Role != entity.PartnerRoleContractor && in.Role != entity.PartnerRoleSupplier {
		return nil, domain.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	partner := &entity.Partner{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		CompanyName:  in.CompanyName,
		ContactEmail: in.ContactEmail,
		Role:         in.Role,
		Status:       entity.PartnerStatusActive,
		CreatedAt:    time.Now(),
	}
	if err := uc.partnerRepo.Create(partner); err != nil {
		return nil, err
	}
	return &dto.PartnerResponse{
		ID:           partner.ID,
		Username:     partner.Username,
		CompanyName:  partner.CompanyName,
		ContactEmail: partner.ContactEmail,
		Role:         partner.Role,
		Status:       partner.Status,
		CreatedAt:    partner.CreatedAt,
	}, nil
}

// RegisterContractor crea un constructor del esquema nuevo. Devuelve
// ErrDuplicateIdentity si el email ya existe.
func (uc *AuthUseCase) RegisterContractor(in dto.RegisterContractorRequest) (*dto.ContractorResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	contractor := &entity.Contractor{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.contractorRepo.Create(contractor); err != nil {
		return nil, err
	}
	return &dto.ContractorResponse{
		ID:          contractor.ID,
		Name:        contractor.Name,
		Email:       contractor.Email,
		PhoneNumber: contractor.PhoneNumber,
		Address:     contractor.Address,
		CreatedAt:   contractor.CreatedAt,
	}, nil
}

// ResetPassword restablece el secreto de la variante indicada. El destino es
// un mapa cerrado variante -> repositorio: la tabla y las columnas las fija
// cada adaptador y ningún identificador externo llega al texto SQL.
func (uc *AuthUseCase) ResetPassword(kind entity.PrincipalKind, key, newSecret string) error {
	if key == "" || newSecret == "" {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newSecret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	switch kind {
	case entity.KindEmployee:
		return uc.employeeRepo.UpdatePassword(key, string(hash))
	case entity.KindPartner:
		return uc.partnerRepo.UpdatePassword(key, string(hash))
	case entity.KindContractor:
		return uc.contractorRepo.UpdatePassword(key, string(hash))
	}
	return domain.ErrInvalidRole
}

// ToPrincipalResponse arma el perfil para la superficie de la variante.
func ToPrincipalResponse(p *entity.Principal) *dto.PrincipalResponse {
	if p == nil {
		return nil
	}
	out := &dto.PrincipalResponse{
		Kind: string(p.Kind),
		Key:  p.Key(),
		Name: p.DisplayName(),
	}
	switch p.Kind {
	case entity.KindPartner:
		if p.Partner != nil {
			out.CompanyName = p.Partner.CompanyName
			out.Email = p.Partner.ContactEmail
			out.Role = p.Partner.Role
		}
	case entity.KindContractor:
		if p.Contractor != nil {
			out.Email = p.Contractor.Email
			out.PhoneNumber = p.Contractor.PhoneNumber
			out.Address = p.Contractor.Address
		}
	}
	return out
}
