package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// LocalSession key de la sesión en c.Locals.
const LocalSession = "session"

// Authenticator resuelve el token del portal a la sesión guardada.
// Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, portalToken string) (*entity.Session, error)
}

// AuthMiddleware exige un token del portal (header Bearer o cookie) y carga la sesión en c.Locals.
func AuthMiddleware(authn Authenticator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := tokenFromRequest(c, cookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		sess, err := authn.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrSessionExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "La sesión expiró, inicie sesión nuevamente"})
			}
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			return writeError(c, err)
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// OptionalAuth carga la sesión si hay un token válido; si no, sigue sin sesión.
func OptionalAuth(authn Authenticator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, _, _ := tokenFromRequest(c, cookieName); tokenString != "" {
			if sess, err := authn.Authenticate(c.UserContext(), tokenString); err == nil {
				c.Locals(LocalSession, sess)
			}
		}
		return c.Next()
	}
}

// tokenFromRequest lee "Authorization: Bearer <token>" o, en su defecto, la cookie de sesión.
func tokenFromRequest(c *fiber.Ctx, cookieName string) (token, code, msg string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if cookieName != "" {
			if v := c.Cookies(cookieName); v != "" {
				return v, "", ""
			}
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return tokenString, "", ""
}

// RequireRole permite el paso solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol '" + role + "' no tiene acceso a este recurso"})
	}
}

// RequirePermission verifica access.Can(rol, resource, action). Debe ir después de AuthMiddleware.
//   - 401 → sin sesión o sesión sin rol.
//   - 403 → el rol no tiene la acción sobre el recurso.
func RequirePermission(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol"})
		}
		if !access.Can(role, resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no puede " + action + " en '" + resource + "'",
			})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth) o nil.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// GetUserID devuelve el UserID de la sesión.
func GetUserID(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.UserID
	}
	return ""
}

// GetRole devuelve el rol de la sesión.
func GetRole(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.Role
	}
	return ""
}
