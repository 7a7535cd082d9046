// Package access contiene la decisión de ruteo por rol: a qué tablero va cada usuario,
// qué ve en la barra lateral y qué acciones puede ejecutar sobre cada recurso.
package access

import (
	"strings"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// Rutas públicas y de inicio.
const (
	PathLogin      = "/login"
	PathRegister   = "/register"
	PathSuperAdmin = "/superadmin"
	PathAdmin      = "/admin"
	PathEmployee   = "/employee"
)

// Acciones sobre recursos.
const (
	ActionRead    = "read"
	ActionWrite   = "write"   // crear / actualizar
	ActionDelete  = "delete"
	ActionApprove = "approve" // aprobar / rechazar
)

// Recursos navegables.
const (
	ResourceDashboard      = "dashboard"
	ResourceUsers          = "users"
	ResourceProducts       = "products"
	ResourceOrders         = "orders"
	ResourcePurchases      = "purchases"
	ResourceReturns        = "returns"
	ResourceSuppliers      = "suppliers"
	ResourceSetup          = "setup"
	ResourceInventory      = "inventory"
	ResourceRequestedItems = "requested-items"
	ResourcePOS            = "pos"
)

// NormalizeRole pasa el rol a minúsculas sin espacios; devuelve "" si no es un rol conocido.
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	switch r {
	case entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleEmployee:
		return r
	}
	return ""
}

// Home ruta del tablero del rol. Un rol desconocido vuelve a /login.
func Home(role string) string {
	switch NormalizeRole(role) {
	case entity.RoleSuperAdmin:
		return PathSuperAdmin
	case entity.RoleAdmin:
		return PathAdmin
	case entity.RoleEmployee:
		return PathEmployee
	}
	return PathLogin
}

// Decision resultado de Resolve: o se permite la ruta o se redirige.
type Decision struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}

func allow() Decision              { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{Redirect: to} }

// Resolve decide qué hacer con una navegación a path. role vacío significa sin sesión.
func Resolve(role, path string) Decision {
	path = cleanPath(path)
	public := path == PathLogin || path == PathRegister
	r := NormalizeRole(role)

	if r == "" {
		if public {
			return allow()
		}
		return redirect(PathLogin)
	}

	home := Home(r)
	if public || path == "/" {
		return redirect(home)
	}

	shell := shellOf(path)
	if shell == "" {
		// rutas fuera de los tableros (p. ej. /profile) son comunes a todos
		return allow()
	}
	if shell != home {
		return redirect(home)
	}
	return allow()
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return strings.ToLower(p)
}

func shellOf(path string) string {
	for _, shell := range []string{PathSuperAdmin, PathAdmin, PathEmployee} {
		if path == shell || strings.HasPrefix(path, shell+"/") {
			return shell
		}
	}
	return ""
}

// NavItem entrada de la barra lateral.
type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type navEntry struct {
	resource string
	label    string
	segment  string
}

// Orden fijo de la barra lateral; cada rol ve el subconjunto que puede leer.
var navOrder = []navEntry{
	{ResourceDashboard, "Tablero", ""},
	{ResourcePOS, "Punto de venta", "pos"},
	{ResourceProducts, "Productos", "products"},
	{ResourceInventory, "Inventario", "inventory"},
	{ResourceOrders, "Órdenes", "orders"},
	{ResourcePurchases, "Compras", "purchases"},
	{ResourceReturns, "Devoluciones", "returns"},
	{ResourceRequestedItems, "Solicitudes", "requested-items"},
	{ResourceSuppliers, "Proveedores", "suppliers"},
	{ResourceSetup, "Configuración", "setup"},
	{ResourceUsers, "Usuarios", "users"},
}

// navHidden recursos que el rol puede leer pero no aparecen en su barra lateral.
// El empleado consulta el catálogo solo desde el punto de venta.
var navHidden = map[string]map[string]bool{
	entity.RoleEmployee: {ResourceProducts: true},
}

// Navigation devuelve los ítems de la barra lateral del rol, con rutas bajo su tablero.
func Navigation(role string) []NavItem {
	r := NormalizeRole(role)
	if r == "" {
		return []NavItem{}
	}
	home := Home(r)
	items := make([]NavItem, 0, len(navOrder))
	for _, e := range navOrder {
		if !Can(r, e.resource, ActionRead) || navHidden[r][e.resource] {
			continue
		}
		p := home
		if e.segment != "" {
			p = home + "/" + e.segment
		}
		items = append(items, NavItem{Key: e.resource, Label: e.label, Path: p})
	}
	return items
}

// permisos por rol: recurso → acciones permitidas.
var permissions = map[string]map[string][]string{
	entity.RoleAdmin: {
		ResourceDashboard:      {ActionRead},
		ResourcePOS:            {ActionRead, ActionWrite},
		ResourceProducts:       {ActionRead, ActionWrite, ActionDelete},
		ResourceInventory:      {ActionRead, ActionWrite},
		ResourceOrders:         {ActionRead, ActionWrite, ActionDelete, ActionApprove},
		ResourcePurchases:      {ActionRead, ActionWrite, ActionDelete},
		ResourceReturns:        {ActionRead, ActionWrite, ActionApprove},
		ResourceRequestedItems: {ActionRead, ActionWrite, ActionDelete, ActionApprove},
		ResourceSuppliers:      {ActionRead, ActionWrite, ActionDelete},
		ResourceSetup:          {ActionRead, ActionWrite, ActionDelete},
	},
	entity.RoleEmployee: {
		ResourceDashboard:      {ActionRead},
		ResourcePOS:            {ActionRead, ActionWrite},
		ResourceProducts:       {ActionRead},
		ResourceInventory:      {ActionRead},
		ResourceOrders:         {ActionRead, ActionWrite},
		ResourceReturns:        {ActionRead, ActionWrite},
		ResourceRequestedItems: {ActionRead, ActionWrite},
	},
}

// Can indica si el rol puede ejecutar action sobre resource. El superadmin puede todo.
func Can(role, resource, action string) bool {
	r := NormalizeRole(role)
	if r == entity.RoleSuperAdmin {
		return true
	}
	for _, a := range permissions[r][resource] {
		if a == action {
			return true
		}
	}
	return false
}
