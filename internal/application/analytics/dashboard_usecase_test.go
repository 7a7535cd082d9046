package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/testutil"
)

func fixedNow() time.Time { return time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC) }

func seeded() *testutil.Backend {
	now := fixedNow()
	ayer := now.Add(-24 * time.Hour)
	be := testutil.NewBackend()
	be.Products = []entity.Product{
		{ID: "p1", Name: "A", Stock: 3},
		{ID: "p2", Name: "B", Stock: 100, ExpiryDate: &ayer},
	}
	be.Orders = []entity.Order{
		{ID: "o1", Status: entity.StatusApproved, CreatedBy: "emp", CreatedAt: now.Add(-time.Hour), Total: decimal.NewFromInt(12500)},
		{ID: "o2", Status: entity.StatusApproved, CreatedBy: "adm", CreatedAt: now.Add(-2 * time.Hour), Total: decimal.NewFromInt(30000)},
		{ID: "o3", Status: entity.StatusApproved, CreatedBy: "adm", CreatedAt: ayer, Total: decimal.NewFromInt(99999)},
		{ID: "o4", Status: entity.StatusPending, CreatedBy: "emp"},
	}
	be.Returns = []entity.ReturnRecord{{ID: "r1", Status: entity.StatusPending}}
	be.RequestedItems = []entity.RequestedItem{{ID: "q1", Status: entity.StatusPending}, {ID: "q2", Status: entity.StatusFulfilled}}
	be.Users = []entity.User{{ID: "u1"}, {ID: "u2"}}
	return be
}

func newUC(be *testutil.Backend) *DashboardUseCase {
	uc := NewDashboardUseCase(be, 10)
	uc.now = fixedNow
	return uc
}

func TestGetSummary_Admin(t *testing.T) {
	be := seeded()
	out, err := newUC(be).GetSummary(context.Background(), &entity.Session{UserID: "adm", Role: entity.RoleAdmin, BackendToken: "t"})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Products)
	assert.Equal(t, 1, out.LowStock)
	assert.Equal(t, 1, out.ExpiredProducts)
	assert.Equal(t, 1, out.PendingOrders)
	assert.Equal(t, 1, out.PendingReturns)
	assert.Equal(t, 1, out.PendingRequests)
	assert.Equal(t, 2, out.TodayApprovedOrders)
	assert.Equal(t, "$42.500", out.TodayRevenueFormatted)
	assert.Nil(t, out.Users)
	assert.Equal(t, 0, be.Called("ListUsers"))
}

func TestGetSummary_EmpleadoSoloSusOrdenes(t *testing.T) {
	out, err := newUC(seeded()).GetSummary(context.Background(), &entity.Session{UserID: "emp", Role: entity.RoleEmployee, BackendToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TodayApprovedOrders)
	assert.True(t, decimal.NewFromInt(12500).Equal(out.TodayRevenue))
}

func TestGetSummary_TotalCalculadoNoNegativo(t *testing.T) {
	be := seeded()
	now := fixedNow()
	be.Orders = []entity.Order{
		{ID: "o1", Status: entity.StatusApproved, CreatedAt: now.Add(-time.Hour), Discount: decimal.NewFromInt(5000),
			Items: []entity.OrderItem{{ProductName: "A", Quantity: 1, Price: decimal.NewFromInt(1000)}}},
		{ID: "o2", Status: entity.StatusApproved, CreatedAt: now.Add(-time.Hour),
			Items: []entity.OrderItem{{ProductName: "A", Quantity: 2, Price: decimal.NewFromInt(1500)}}},
	}
	out, err := newUC(be).GetSummary(context.Background(), &entity.Session{Role: entity.RoleAdmin, BackendToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TodayApprovedOrders)
	assert.True(t, decimal.NewFromInt(3000).Equal(out.TodayRevenue), out.TodayRevenue.String())
}

func TestGetSummary_SuperadminCuentaUsuarios(t *testing.T) {
	out, err := newUC(seeded()).GetSummary(context.Background(), &entity.Session{Role: entity.RoleSuperAdmin, BackendToken: "t"})
	require.NoError(t, err)
	require.NotNil(t, out.Users)
	assert.Equal(t, 2, *out.Users)
}

func TestGetSummary_PrimerErrorAborta(t *testing.T) {
	be := seeded()
	be.Errs["ListOrders"] = domain.ErrBackendDown
	_, err := newUC(be).GetSummary(context.Background(), &entity.Session{Role: entity.RoleAdmin, BackendToken: "t"})
	assert.ErrorIs(t, err, domain.ErrBackendDown)
}
