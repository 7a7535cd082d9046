// Package analytics tarjetas del tablero de cada rol.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/pkg/money"
)

// Backend recursos consultados por el tablero.
type Backend interface {
	ports.AuthAPI
	ports.ProductAPI
	ports.OrderAPI
	ports.ReturnAPI
	ports.RequestedItemAPI
}

// DashboardUseCase genera el resumen del día para el tablero del rol.
type DashboardUseCase struct {
	api      Backend
	lowStock int
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(api Backend, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{api: api, lowStock: lowStockThreshold, now: time.Now}
}

// GetSummary construye las tarjetas del tablero.
//
// Consultas en paralelo (la primera que falla cancela el resto):
//  1. productos      → total, stock bajo, vencidos
//  2. órdenes        → pendientes, aprobadas hoy e ingreso del día
//  3. devoluciones   → pendientes
//  4. solicitudes    → pendientes
//  5. usuarios       → total (solo superadmin)
//
// Un empleado solo cuenta sus propias órdenes.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, sess *entity.Session) (*dto.DashboardSummary, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)
	tok := sess.BackendToken

	var (
		products []entity.Product
		orders   []entity.Order
		returns  []entity.ReturnRecord
		requests []entity.RequestedItem
		users    []entity.User
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if products, err = uc.api.ListProducts(ctx, tok); err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if orders, err = uc.api.ListOrders(ctx, tok, ""); err != nil {
			return fmt.Errorf("dashboard: órdenes: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if returns, err = uc.api.ListReturns(ctx, tok); err != nil {
			return fmt.Errorf("dashboard: devoluciones: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if requests, err = uc.api.ListRequestedItems(ctx, tok); err != nil {
			return fmt.Errorf("dashboard: solicitudes: %w", err)
		}
		return nil
	})
	canUsers := access.Can(sess.Role, access.ResourceUsers, access.ActionRead)
	if canUsers {
		g.Go(func() (err error) {
			if users, err = uc.api.ListUsers(ctx, tok); err != nil {
				return fmt.Errorf("dashboard: usuarios: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummary{Role: sess.Role, Products: len(products), TodayRevenue: decimal.Zero}
	for _, p := range products {
		if p.Stock <= uc.lowStock {
			out.LowStock++
		}
		if p.Expired(now) {
			out.ExpiredProducts++
		}
	}
	own := sess.Role == entity.RoleEmployee
	for _, o := range orders {
		if own && o.CreatedBy != sess.UserID {
			continue
		}
		switch {
		case o.Status == entity.StatusPending:
			out.PendingOrders++
		case o.Approved() && !o.CreatedAt.Before(todayStart) && o.CreatedAt.Before(todayEnd):
			out.TodayApprovedOrders++
			out.TodayRevenue = out.TodayRevenue.Add(o.EffectiveTotal())
		}
	}
	for _, r := range returns {
		if r.Status == entity.StatusPending {
			out.PendingReturns++
		}
	}
	for _, r := range requests {
		if r.Status == entity.StatusPending {
			out.PendingRequests++
		}
	}
	if canUsers {
		n := len(users)
		out.Users = &n
	}
	out.TodayRevenue = out.TodayRevenue.Round(2)
	out.TodayRevenueFormatted = money.Format(out.TodayRevenue)
	return out, nil
}
