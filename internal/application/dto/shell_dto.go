package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
)

// ShellResponse armazón del tablero: rol, ruta de inicio y barra lateral.
type ShellResponse struct {
	Role       string           `json:"role"`
	Home       string           `json:"home"`
	User       SessionUser      `json:"user"`
	Navigation []access.NavItem `json:"navigation"`
}

// RouteResponse decisión de navegación para una ruta del cliente.
type RouteResponse struct {
	Path string `json:"path"`
	access.Decision
}

// DashboardSummary tarjetas del tablero.
type DashboardSummary struct {
	Role                  string          `json:"role"`
	Products              int             `json:"products"`
	LowStock              int             `json:"lowStock"`
	ExpiredProducts       int             `json:"expiredProducts"`
	PendingOrders         int             `json:"pendingOrders"`
	PendingReturns        int             `json:"pendingReturns"`
	PendingRequests       int             `json:"pendingRequests"`
	TodayApprovedOrders   int             `json:"todayApprovedOrders"`
	TodayRevenue          decimal.Decimal `json:"todayRevenue"`
	TodayRevenueFormatted string          `json:"todayRevenueFormatted"`
	Users                 *int            `json:"users,omitempty"` // solo superadmin
}
