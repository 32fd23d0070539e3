package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/buildlink/marketplace-api/internal/application/auth"
	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/pkg/token"
)

// AuthHandler maneja login, registro, logout y reset de contraseña.
type AuthHandler struct {
	uc          *auth.AuthUseCase
	tokenSecret string
	expMinutes  int
}

// NewAuthHandler construye el handler de identidad.
func NewAuthHandler(uc *auth.AuthUseCase, tokenSecret string, expMinutes int) *AuthHandler {
	return &AuthHandler{uc: uc, tokenSecret: tokenSecret, expMinutes: expMinutes}
}

// LoginPage godoc
// @Summary      Superficie de login
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	// Con sesión vigente no se vuelve a pedir login: se redirige a la
	// superficie de la variante portadora.
	if raw := c.Cookies(SessionCookie); raw != "" {
		if kind, key, err := token.Parse(h.tokenSecret, raw); err == nil && key != "" {
			if k := entity.PrincipalKind(kind); k.Valid() {
				return c.Redirect(k.HomePath(), fiber.StatusSeeOther)
			}
		}
		c.ClearCookie(SessionCookie)
	}
	return c.JSON(fiber.Map{
		"title":  "BuildLink 系統登入",
		"status": c.Query("status"),
		"error":  c.Query("error"),
	})
}

// Login godoc
// @Summary      Login legado por etiqueta de rol (員工 / Contractor / Supplier)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "role, username, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ingrese cuenta, contraseña e identidad"})
	}
	kind, partnerRole, err := auth.ResolveRoleLabel(in.Role)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Authenticate(kind, partnerRole, in.Username, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookie(c, out.Token)
	return c.JSON(out)
}

// ContractorLogin godoc
// @Summary      Login del marketplace por email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContractorLoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/contractor/login [post]
func (h *AuthHandler) ContractorLogin(c *fiber.Ctx) error {
	var in dto.ContractorLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Authenticate(entity.KindContractor, "", in.Email, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookie(c, out.Token)
	return c.JSON(out)
}

// RegisterPartner godoc
// @Summary      Registrar contratista/proveedor legado
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPartnerRequest  true  "username, password, company_name, role"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) RegisterPartner(c *fiber.Ctx) error {
	var in dto.RegisterPartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" || in.CompanyName == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "complete todos los campos obligatorios"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.RegisterPartner(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterContractor godoc
// @Summary      Registrar constructor del marketplace
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterContractorRequest  true  "name, email, password"
// @Success      201   {object}  dto.ContractorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/contractor/register [post]
func (h *AuthHandler) RegisterContractor(c *fiber.Ctx) error {
	var in dto.RegisterContractorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.RegisterContractor(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ResetPassword godoc
// @Summary      Restablecer contraseña por variante
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "role, key, new_password"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	kind, _, err := auth.ResolveRoleLabel(in.Role)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.ResetPassword(kind, in.Key, in.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Logout godoc
// @Summary      Cerrar sesión (limpia la cookie sin importar la variante)
// @Tags         auth
// @Success      303
// @Router       /logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Idempotente: sin sesión activa igual se responde con el redirect.
	c.ClearCookie(SessionCookie)
	return c.Redirect(LoginPath, fiber.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, signed string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.expMinutes) * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
