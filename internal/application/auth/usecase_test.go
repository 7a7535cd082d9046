package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/testutil"
	"github.com/jhoicas/Farmacia-portal/pkg/jwt"
)

var testJWT = JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "farmacia-test"}

func newAuth() (*AuthUseCase, *testutil.Backend, *testutil.SessionRepo) {
	be := testutil.NewBackend()
	be.AddAccount("admin@farmacia.co", "clave123", "backend-admin", entity.User{ID: "u1", Name: "Ana", Role: "Admin"})
	be.AddAccount("emp@farmacia.co", "clave123", "backend-emp", entity.User{ID: "u2", Name: "Pedro", Role: "employee"})
	be.AddAccount("root@farmacia.co", "clave123", "backend-root", entity.User{ID: "u3", Name: "Root", Role: "SUPERADMIN"})
	be.AddAccount("raro@farmacia.co", "clave123", "backend-raro", entity.User{ID: "u4", Name: "Raro", Role: "cliente"})
	repo := testutil.NewSessionRepo()
	return NewAuthUseCase(be, repo, testJWT), be, repo
}

func TestLogin_CadaRolVaASuTablero(t *testing.T) {
	uc, _, repo := newAuth()
	cases := map[string]string{
		"admin@farmacia.co": "/admin",
		"emp@farmacia.co":   "/employee",
		"root@farmacia.co":  "/superadmin",
	}
	for email, home := range cases {
		out, err := uc.Login(context.Background(), dto.LoginRequest{Email: email, Password: "clave123"})
		require.NoError(t, err, email)
		assert.Equal(t, home, out.Home, email)

		claims, err := jwt.Parse(testJWT.Secret, out.Token)
		require.NoError(t, err)
		sess, err := repo.GetByID(context.Background(), claims.SessionID)
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, out.User.Role, sess.Role)
		assert.NotEmpty(t, sess.BackendToken)
	}
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, repo := newAuth()
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@farmacia.co", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, repo.Sessions)
}

func TestLogin_FormularioInvalido(t *testing.T) {
	uc, be, _ := newAuth()
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "no-es-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, be.Called("Login"))
}

func TestLogin_RolDesconocido(t *testing.T) {
	uc, _, repo := newAuth()
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "raro@farmacia.co", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, repo.Sessions)
}

func TestAuthenticate(t *testing.T) {
	uc, _, repo := newAuth()
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "emp@farmacia.co", Password: "clave123"})
	require.NoError(t, err)

	sess, err := uc.Authenticate(context.Background(), out.Token)
	require.NoError(t, err)
	assert.Equal(t, "backend-emp", sess.BackendToken)

	_, err = uc.Authenticate(context.Background(), "basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// vencida en el repositorio aunque el JWT siga vigente
	uc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = uc.Authenticate(context.Background(), out.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Empty(t, repo.Sessions, "la sesión vencida se elimina")
}

func TestLogout_CierraSesion(t *testing.T) {
	uc, _, _ := newAuth()
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@farmacia.co", Password: "clave123"})
	require.NoError(t, err)
	sess, err := uc.Authenticate(context.Background(), out.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), sess.ID))
	_, err = uc.Authenticate(context.Background(), out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NoError(t, uc.Logout(context.Background(), sess.ID))
}

func TestPurgeExpired(t *testing.T) {
	uc, _, repo := newAuth()
	now := time.Now()
	require.NoError(t, repo.Create(context.Background(), &entity.Session{ID: "viejo", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Create(context.Background(), &entity.Session{ID: "nuevo", ExpiresAt: now.Add(time.Hour)}))

	n, err := uc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Contains(t, repo.Sessions, "nuevo")
}

func TestShellYRoute(t *testing.T) {
	uc, _, _ := newAuth()
	emp := &entity.Session{UserID: "u2", Name: "Pedro", Role: entity.RoleEmployee}

	shell := uc.Shell(emp)
	assert.Equal(t, "/employee", shell.Home)
	require.NotEmpty(t, shell.Navigation)
	for _, item := range shell.Navigation {
		assert.NotEqual(t, "users", item.Key)
	}

	r := uc.Route(emp, "/admin/products")
	assert.False(t, r.Allow)
	assert.Equal(t, "/employee", r.Redirect)

	r = uc.Route(nil, "/superadmin")
	assert.Equal(t, "/login", r.Redirect)
}

func TestRefreshProfile_TokenDelBackendVencido(t *testing.T) {
	uc, _, repo := newAuth()
	sess := &entity.Session{ID: "s1", BackendToken: "revocado", Role: entity.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), sess))

	_, err := uc.RefreshProfile(context.Background(), sess)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Empty(t, repo.Sessions)
}
