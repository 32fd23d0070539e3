package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildlink/marketplace-api/internal/application/auth"
	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memEmployees struct{ rows map[string]*entity.Employee }

func (m *memEmployees) Create(e *entity.Employee) error {
	if _, ok := m.rows[e.EmpID]; ok {
		return domain.ErrDuplicateIdentity
	}
	m.rows[e.EmpID] = e
	return nil
}
func (m *memEmployees) GetByEmpID(id string) (*entity.Employee, error) { return m.rows[id], nil }
func (m *memEmployees) UpdatePassword(id, hash string) error {
	e, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.PasswordHash = hash
	return nil
}

type memPartners struct{ rows map[string]*entity.Partner }

func (m *memPartners) Create(p *entity.Partner) error {
	if _, ok := m.rows[p.Username]; ok {
		return domain.ErrDuplicateIdentity
	}
	m.rows[p.Username] = p
	return nil
}
func (m *memPartners) GetByUsername(u string) (*entity.Partner, error) { return m.rows[u], nil }
func (m *memPartners) GetActiveByUsernameAndRole(u, role string) (*entity.Partner, error) {
	p := m.rows[u]
	if p == nil || p.Status != entity.PartnerStatusActive || p.Role != role {
		return nil, nil
	}
	return p, nil
}
func (m *memPartners) UpdatePassword(u, hash string) error {
	p, ok := m.rows[u]
	if !ok {
		return domain.ErrNotFound
	}
	p.PasswordHash = hash
	return nil
}

type memContractors struct{ rows map[string]*entity.Contractor }

func (m *memContractors) Create(c *entity.Contractor) error {
	if _, ok := m.rows[c.Email]; ok {
		return domain.ErrDuplicateIdentity
	}
	m.rows[c.Email] = c
	return nil
}
func (m *memContractors) GetByID(id string) (*entity.Contractor, error) {
	for _, c := range m.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContractors) GetByEmail(e string) (*entity.Contractor, error) { return m.rows[e], nil }
func (m *memContractors) UpdatePassword(e, hash string) error {
	c, ok := m.rows[e]
	if !ok {
		return domain.ErrNotFound
	}
	c.PasswordHash = hash
	return nil
}

const (
	ucSecret = "usecase-test-secret"
	ucIssuer = "buildlink-test"
)

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// newUseCase arma el caso de uso con el escenario de Ada: la misma persona
// tiene un partner legado (username "ada_obras", rol Contractor) y una cuenta
// nueva del marketplace (email "ada@example.com"). Son identidades distintas.
func newUseCase(t *testing.T) (*auth.AuthUseCase, *memEmployees, *memPartners, *memContractors) {
	t.Helper()
	employees := &memEmployees{rows: map[string]*entity.Employee{
		"E1001": {EmpID: "E1001", PasswordHash: mustHash(t, "empleado123"), Name: "陳大文"},
	}}
	partners := &memPartners{rows: map[string]*entity.Partner{
		"ada_obras": {
			ID: "p-ada", Username: "ada_obras", PasswordHash: mustHash(t, "adalegada"),
			CompanyName: "Obras Ada", Role: entity.PartnerRoleContractor,
			Status: entity.PartnerStatusActive,
		},
		"inactivo": {
			ID: "p-in", Username: "inactivo", PasswordHash: mustHash(t, "inactivo123"),
			CompanyName: "Baja Temporal", Role: entity.PartnerRoleSupplier,
			Status: entity.PartnerStatusInactive,
		},
	}}
	contractors := &memContractors{rows: map[string]*entity.Contractor{
		"ada@example.com": {
			ID: "c-ada", Name: "Ada Construcciones", Email: "ada@example.com",
			PasswordHash: mustHash(t, "adamarketplace"),
		},
	}}
	uc := auth.NewAuthUseCase(employees, partners, contractors, auth.TokenConfig{
		Secret:     ucSecret,
		ExpMinutes: 60,
		Issuer:     ucIssuer,
	})
	return uc, employees, partners, contractors
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_Empleado_EmiteTokenDeSuVariante(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	out, err := uc.Authenticate(entity.KindEmployee, "", "E1001", "empleado123")
	require.NoError(t, err)

	assert.Equal(t, "employee", out.Kind)
	assert.Equal(t, "/", out.Home)

	kind, key, err := token.Parse(ucSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "employee", kind)
	assert.Equal(t, "E1001", key)
}

// Ada entra como partner legado o como contratista del marketplace según la
// puerta que use: cada login emite una identidad distinta, nunca ambas.
func TestAuthenticate_EscenarioAda_DosIdentidadesSeparadas(t *testing.T) {
	uc, _, _, _ := newUseCase(t)

	legacy, err := uc.Authenticate(entity.KindPartner, entity.PartnerRoleContractor, "ada_obras", "adalegada")
	require.NoError(t, err)
	assert.Equal(t, "partner", legacy.Kind)
	assert.Equal(t, "/partner/home", legacy.Home)

	marketplace, err := uc.Authenticate(entity.KindContractor, "", "ada@example.com", "adamarketplace")
	require.NoError(t, err)
	assert.Equal(t, "contractor", marketplace.Kind)
	assert.Equal(t, "/contractor/dashboard", marketplace.Home)

	// La credencial de una puerta no abre la otra.
	_, err = uc.Authenticate(entity.KindContractor, "", "ada@example.com", "adalegada")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_VarianteInvalida(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	_, err := uc.Authenticate("admin", "", "E1001", "empleado123")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAuthenticate_CamposVacios(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	_, err := uc.Authenticate(entity.KindEmployee, "", "", "empleado123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Authenticate(entity.KindEmployee, "", "E1001", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cuenta inexistente y contraseña mala producen el mismo error genérico.
func TestAuthenticate_FalloGenericoDeCredenciales(t *testing.T) {
	uc, _, _, _ := newUseCase(t)

	_, errUnknown := uc.Authenticate(entity.KindEmployee, "", "E9999", "empleado123")
	_, errBadPass := uc.Authenticate(entity.KindEmployee, "", "E1001", "incorrecta")

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPass, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errBadPass, "ambos fallos deben ser indistinguibles")
}

func TestAuthenticate_PartnerInactivo(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	_, err := uc.Authenticate(entity.KindPartner, entity.PartnerRoleSupplier, "inactivo", "inactivo123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_PartnerRolNoCoincide(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	// ada_obras es Contractor; pedir Supplier no entra.
	_, err := uc.Authenticate(entity.KindPartner, entity.PartnerRoleSupplier, "ada_obras", "adalegada")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_PartnerRolDesconocido(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	_, err := uc.Authenticate(entity.KindPartner, "Gerente", "ada_obras", "adalegada")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolvePrincipal
// ──────────────────────────────────────────────────────────────────────────────

func TestResolvePrincipal_ConsultaFresca(t *testing.T) {
	uc, _, _, contractors := newUseCase(t)

	p, err := uc.ResolvePrincipal(entity.KindContractor, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Construcciones", p.DisplayName())

	// Un cambio de perfil es visible de inmediato: el token no cachea datos.
	contractors.rows["ada@example.com"].Name = "Ada Construcciones S.A."
	p, err = uc.ResolvePrincipal(entity.KindContractor, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Construcciones S.A.", p.DisplayName())
}

func TestResolvePrincipal_FilaBorrada_SesionObsoleta(t *testing.T) {
	uc, _, _, contractors := newUseCase(t)
	delete(contractors.rows, "ada@example.com")

	_, err := uc.ResolvePrincipal(entity.KindContractor, "ada@example.com")
	assert.ErrorIs(t, err, domain.ErrStaleSession)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterContractor_HasheaElSecreto(t *testing.T) {
	uc, _, _, contractors := newUseCase(t)

	out, err := uc.RegisterContractor(dto.RegisterContractorRequest{
		Name: "Obras Nuevas", Email: "nuevas@example.com", Password: "obras12345",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)

	row := contractors.rows["nuevas@example.com"]
	require.NotNil(t, row)
	assert.NotEqual(t, "obras12345", row.PasswordHash, "el secreto nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte("obras12345")))
}

func TestRegisterContractor_Duplicado(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	_, err := uc.RegisterContractor(dto.RegisterContractorRequest{
		Name: "Otra Ada", Email: "ada@example.com", Password: "otracuenta1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
}

func TestRegisterPartner_ArrancaActivo(t *testing.T) {
	uc, _, partners, _ := newUseCase(t)
	out, err := uc.RegisterPartner(dto.RegisterPartnerRequest{
		Username: "nuevo_socio", Password: "socio12345",
		CompanyName: "Socio Nuevo", Role: entity.PartnerRoleSupplier,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PartnerStatusActive, out.Status)
	assert.NotNil(t, partners.rows["nuevo_socio"])
}

func TestRegisterPartner_RolFueraDelEsquema(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	_, err := uc.RegisterPartner(dto.RegisterPartnerRequest{
		Username: "nuevo_socio", Password: "socio12345",
		CompanyName: "Socio Nuevo", Role: "Gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResetPassword
// ──────────────────────────────────────────────────────────────────────────────

func TestResetPassword_PorVariante(t *testing.T) {
	uc, _, _, _ := newUseCase(t)

	require.NoError(t, uc.ResetPassword(entity.KindEmployee, "E1001", "empleado456"))

	_, err := uc.Authenticate(entity.KindEmployee, "", "E1001", "empleado123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "la contraseña anterior queda invalidada")

	_, err = uc.Authenticate(entity.KindEmployee, "", "E1001", "empleado456")
	assert.NoError(t, err)
}

func TestResetPassword_CuentaInexistente(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	err := uc.ResetPassword(entity.KindContractor, "nadie@example.com", "loquesea123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResetPassword_EntradaVacia(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	assert.ErrorIs(t, uc.ResetPassword(entity.KindEmployee, "", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.ResetPassword(entity.KindEmployee, "E1001", ""), domain.ErrInvalidInput)
}
