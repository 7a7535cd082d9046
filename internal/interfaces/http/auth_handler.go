package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-portal/internal/application/auth"
	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
)

// CookieConfig cookie HttpOnly con el token del portal.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// AuthHandler maneja login, logout y el armazón del tablero.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida credenciales contra el backend, crea la sesión y devuelve el token del portal y la ruta del tablero del rol.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	var expires time.Time // sin TTL queda como cookie de sesión del navegador
	if h.cookie.TTL > 0 {
		expires = time.Now().Add(h.cookie.TTL)
	}
	h.setCookie(c, out.Token, expires)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess := GetSession(c); sess != nil {
		if err := h.uc.Logout(c.UserContext(), sess.ID); err != nil {
			return writeError(c, err)
		}
	}
	h.setCookie(c, "", time.Unix(0, 0))
	return c.JSON(dto.MessageResponse{Message: "Sesión cerrada"})
}

// Me godoc
// @Summary      Perfil de la sesión
// @Description  Con refresh=true vuelve a consultar /auth/me en el backend.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        refresh  query  bool  false  "Validar contra el backend"
// @Success      200  {object}  dto.SessionUser
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := GetSession(c)
	if c.QueryBool("refresh", false) {
		out, err := h.uc.RefreshProfile(c.UserContext(), sess)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	return c.JSON(auth.SessionUser(sess))
}

// Shell godoc
// @Summary      Armazón del tablero (rol, inicio y barra lateral)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShellResponse
// @Router       /api/shell [get]
func (h *AuthHandler) Shell(c *fiber.Ctx) error {
	return c.JSON(h.uc.Shell(GetSession(c)))
}

// Route godoc
// @Summary      Decidir navegación de una ruta del cliente
// @Description  Sin sesión redirige a /login; con sesión de otro rol redirige al tablero propio.
// @Tags         auth
// @Produce      json
// @Param        path  query  string  true  "Ruta del cliente, ej. /admin/products"
// @Success      200  {object}  dto.RouteResponse
// @Router       /api/route [get]
func (h *AuthHandler) Route(c *fiber.Ctx) error {
	path := c.Query("path", "/")
	return c.JSON(h.uc.Route(GetSession(c), path))
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, value string, expires time.Time) {
	if h.cookie.Name == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
