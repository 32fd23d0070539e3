package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/buildlink/marketplace-api/internal/application/auth"
	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/pkg/token"
)

// SessionCookie es la única cookie de sesión: un token firmado con la
// variante y su clave natural. Emitir para otra variante reemplaza la cookie
// completa, así que nunca conviven dos identidades.
const SessionCookie = "buildlink_session"

// Locals keys para la identidad en Fiber.
const (
	LocalKind      = "principal_kind"
	LocalKey       = "principal_key"
	LocalPrincipal = "principal"
)

// LoginPath superficie de login, destino estándar de toda sesión ausente,
// malformada o expirada (redirect, nunca un 401 pelado en superficies).
const LoginPath = "/login"

// Session valida el token de la cookie (o del header Bearer para clientes de
// API) y carga la variante y la clave en c.Locals. Sin token reconocible se
// redirige a la superficie de login.
func Session(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(SessionCookie)
		if raw == "" {
			raw = bearerToken(c)
		}
		if raw == "" {
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}
		kind, key, err := token.Parse(secret, raw)
		if err != nil || !entity.PrincipalKind(kind).Valid() || key == "" {
			c.ClearCookie(SessionCookie)
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}
		c.Locals(LocalKind, entity.PrincipalKind(kind))
		c.Locals(LocalKey, key)
		return c.Next()
	}
}

// RequireKind protege la superficie propia de una variante. Un token válido
// de OTRA variante no es un error: se redirige a la superficie del portador
// (la sesión mal dirigida se corrige sola en vez de forzar re-login).
func RequireKind(kind entity.PrincipalKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		held := GetKind(c)
		if held != kind {
			return c.Redirect(held.HomePath(), fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// ResolvePrincipal resuelve el registro completo de la identidad con una
// consulta fresca y lo deja en c.Locals. Una sesión estructuralmente válida
// sin fila correspondiente está obsoleta: se limpia la cookie y se vuelve al
// login.
func ResolvePrincipal(authUC *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := authUC.ResolvePrincipal(GetKind(c), GetKey(c))
		if err != nil {
			if errors.Is(err, domain.ErrStaleSession) {
				c.ClearCookie(SessionCookie)
				return c.Redirect(LoginPath, fiber.StatusSeeOther)
			}
			return respondError(c, err)
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetKind devuelve la variante del contexto (después de Session).
func GetKind(c *fiber.Ctx) entity.PrincipalKind {
	v := c.Locals(LocalKind)
	if v == nil {
		return ""
	}
	k, _ := v.(entity.PrincipalKind)
	return k
}

// GetKey devuelve la clave natural del contexto (después de Session).
func GetKey(c *fiber.Ctx) string {
	v := c.Locals(LocalKey)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetPrincipal devuelve el principal resuelto (después de ResolvePrincipal).
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*entity.Principal)
	return p
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
