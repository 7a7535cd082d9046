package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/repository"
	"github.com/jhoicas/Farmacia-portal/pkg/jwt"
)

// JWTConfig configuración para generación de tokens del portal.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase inicio/cierre de sesión y resolución del armazón por rol.
type AuthUseCase struct {
	api      ports.AuthAPI
	sessions repository.SessionRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(api ports.AuthAPI, sessions repository.SessionRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{api: api, sessions: sessions, jwtCfg: jwtCfg, now: time.Now}
}

// Login valida credenciales contra el backend, guarda la sesión y emite el token del portal.
// Un usuario con rol desconocido no puede entrar (no tiene tablero).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	token, user, err := uc.api.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("auth: el backend no devolvió token")
	}
	if user == nil {
		// algunos despliegues del backend solo devuelven el token
		if user, err = uc.api.Me(ctx, token); err != nil {
			return nil, err
		}
	}
	role := access.NormalizeRole(user.Role)
	if role == "" {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	sess := &entity.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         role,
		BackendToken: token,
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	portalToken, err := jwt.Generate(uc.jwtCfg.Secret, sess.ID, sess.UserID, sess.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: portalToken,
		Home:  access.Home(role),
		User:  SessionUser(sess),
	}, nil
}

// Authenticate valida el token del portal y carga la sesión.
// Sesión inexistente → ErrUnauthorized; vencida → ErrSessionExpired (y se borra).
func (uc *AuthUseCase) Authenticate(ctx context.Context, portalToken string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, portalToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sess, err := uc.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrUnauthorized
	}
	if sess.Expired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sess.ID)
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

// Logout elimina la sesión. Cerrar una sesión ya eliminada no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, sessionID)
}

// PurgeExpired borra las sesiones vencidas.
func (uc *AuthUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	return uc.sessions.DeleteExpired(ctx, uc.now())
}

// Shell armazón del tablero de la sesión.
func (uc *AuthUseCase) Shell(sess *entity.Session) dto.ShellResponse {
	return dto.ShellResponse{
		Role:       sess.Role,
		Home:       access.Home(sess.Role),
		User:       SessionUser(sess),
		Navigation: access.Navigation(sess.Role),
	}
}

// Route decide si la ruta del cliente se muestra o se redirige. sess puede ser nil.
func (uc *AuthUseCase) Route(sess *entity.Session, path string) dto.RouteResponse {
	role := ""
	if sess != nil {
		role = sess.Role
	}
	return dto.RouteResponse{Path: path, Decision: access.Resolve(role, path)}
}

// RefreshProfile vuelve a pedir /auth/me para validar que el token del backend sigue vigente.
func (uc *AuthUseCase) RefreshProfile(ctx context.Context, sess *entity.Session) (*dto.SessionUser, error) {
	user, err := uc.api.Me(ctx, sess.BackendToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			_ = uc.sessions.Delete(ctx, sess.ID)
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}
	out := dto.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: access.NormalizeRole(user.Role)}
	return &out, nil
}

// SessionUser perfil público de la sesión.
func SessionUser(s *entity.Session) dto.SessionUser {
	return dto.SessionUser{ID: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role}
}
