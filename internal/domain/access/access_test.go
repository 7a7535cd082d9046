package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
)

func TestHome_CadaRolVaASuTablero(t *testing.T) {
	cases := map[string]string{
		"superadmin": "/superadmin",
		"admin":      "/admin",
		"employee":   "/employee",
		" Admin ":    "/admin",
		"SUPERADMIN": "/superadmin",
		"vendedor":   "/login",
		"":           "/login",
	}
	for role, want := range cases {
		assert.Equal(t, want, access.Home(role), "rol %q", role)
	}
}

func TestResolve_SinSesion(t *testing.T) {
	assert.Equal(t, access.Decision{Allow: true}, access.Resolve("", "/login"))
	assert.Equal(t, access.Decision{Allow: true}, access.Resolve("", "/register"))
	assert.Equal(t, access.Decision{Redirect: "/login"}, access.Resolve("", "/admin/products"))
	assert.Equal(t, access.Decision{Redirect: "/login"}, access.Resolve("", "/"))
	assert.Equal(t, access.Decision{Redirect: "/login"}, access.Resolve("desconocido", "/employee"))
}

func TestResolve_ConSesionEnLoginRedirigeAlTablero(t *testing.T) {
	assert.Equal(t, "/superadmin", access.Resolve("superadmin", "/login").Redirect)
	assert.Equal(t, "/admin", access.Resolve("admin", "/").Redirect)
	assert.Equal(t, "/employee", access.Resolve("employee", "/register").Redirect)
}

func TestResolve_TableroAjenoRedirige(t *testing.T) {
	tests := []struct {
		role, path, want string
	}{
		{"employee", "/admin/products", "/employee"},
		{"employee", "/superadmin", "/employee"},
		{"admin", "/superadmin/users", "/admin"},
		{"admin", "/employee/pos", "/admin"},
		{"superadmin", "/admin", "/superadmin"},
	}
	for _, tt := range tests {
		d := access.Resolve(tt.role, tt.path)
		assert.False(t, d.Allow, "%s → %s", tt.role, tt.path)
		assert.Equal(t, tt.want, d.Redirect, "%s → %s", tt.role, tt.path)
	}
}

func TestResolve_TableroPropioPermitido(t *testing.T) {
	assert.True(t, access.Resolve("admin", "/admin/products/").Allow)
	assert.True(t, access.Resolve("employee", "/employee/pos?tab=1").Allow)
	assert.True(t, access.Resolve("superadmin", "/superadmin").Allow)
	// /administrator no es el tablero /admin
	assert.True(t, access.Resolve("employee", "/administrator").Allow)
	assert.True(t, access.Resolve("employee", "/profile").Allow)
}

func TestNavigation_PorRol(t *testing.T) {
	keys := func(items []access.NavItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Key)
		}
		return out
	}

	super := access.Navigation("superadmin")
	assert.Contains(t, keys(super), access.ResourceUsers)
	assert.Equal(t, "/superadmin", super[0].Path)

	admin := keys(access.Navigation("admin"))
	assert.NotContains(t, admin, access.ResourceUsers)
	assert.Contains(t, admin, access.ResourceSetup)

	employee := access.Navigation("employee")
	ek := keys(employee)
	assert.NotContains(t, ek, access.ResourceSuppliers)
	assert.NotContains(t, ek, access.ResourcePurchases)
	assert.Contains(t, ek, access.ResourcePOS)
	assert.NotContains(t, ek, access.ResourceProducts, "el catálogo se consulta desde el punto de venta")
	assert.Equal(t, []string{
		access.ResourceDashboard, access.ResourcePOS, access.ResourceInventory,
		access.ResourceOrders, access.ResourceReturns, access.ResourceRequestedItems,
	}, ek)
	assert.True(t, access.Can("employee", access.ResourceProducts, access.ActionRead))
	for _, it := range employee {
		assert.Regexp(t, `^/employee(/|$)`, it.Path)
	}

	assert.Empty(t, access.Navigation("otro"))
}

func TestCan(t *testing.T) {
	assert.True(t, access.Can("superadmin", access.ResourceUsers, access.ActionDelete))
	assert.False(t, access.Can("admin", access.ResourceUsers, access.ActionRead))
	assert.True(t, access.Can("admin", access.ResourceOrders, access.ActionApprove))
	assert.False(t, access.Can("employee", access.ResourceOrders, access.ActionApprove))
	assert.True(t, access.Can("employee", access.ResourceRequestedItems, access.ActionWrite))
	assert.False(t, access.Can("employee", access.ResourceProducts, access.ActionWrite))
	assert.False(t, access.Can("", access.ResourceDashboard, access.ActionRead))
}
