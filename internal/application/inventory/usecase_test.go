package inventory_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/inventory"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/testutil"
)

var (
	admin    = &entity.Session{UserID: "a", Role: entity.RoleAdmin, BackendToken: "tok"}
	employee = &entity.Session{UserID: "e", Role: entity.RoleEmployee, BackendToken: "tok"}
)

func seeded() *testutil.Backend {
	d1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	d2 := d1.Add(24 * time.Hour)
	be := testutil.NewBackend()
	be.Products = []entity.Product{
		{ID: "p1", Name: "Acetaminofén 500mg", Stock: 8},
		{ID: "p2", Name: "Ibuprofeno", Stock: 60},
	}
	be.Orders = []entity.Order{
		{ID: "o1", Status: entity.StatusApproved, CreatedAt: d1, Items: []entity.OrderItem{
			{ProductName: "acetaminofen 500MG", Quantity: 3, Price: decimal.NewFromInt(1000)},
		}},
		{ID: "o2", Status: entity.StatusPending, CreatedAt: d2, Items: []entity.OrderItem{
			{ProductName: "Acetaminofén 500mg", Quantity: 50, Price: decimal.NewFromInt(1000)},
		}},
	}
	be.Purchases = []entity.Purchase{
		{ID: "c1", ProductName: "Acetaminofén 500mg", Quantity: 20, UnitCost: decimal.NewFromInt(600), PurchaseDate: d1.Add(-time.Hour)},
	}
	return be
}

func TestSummary_SoloOrdenesAprobadas(t *testing.T) {
	uc := inventory.NewUseCase(seeded(), 10)

	out, err := uc.Summary(context.Background(), admin, dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)

	row := out.Rows[0]
	assert.Equal(t, "Acetaminofén 500mg", row.ProductName)
	assert.Equal(t, 3, row.UnitsSold)
	assert.True(t, decimal.NewFromInt(3000).Equal(row.Revenue))
	assert.True(t, row.LowStock)
	assert.Equal(t, 1, out.LowStockCount)
	assert.False(t, out.Empty)
}

func TestSummary_BusquedaSinCoincidencias(t *testing.T) {
	uc := inventory.NewUseCase(seeded(), 10)

	out, err := uc.Summary(context.Background(), admin, dto.ListQuery{Search: "loratadina"})
	require.NoError(t, err)
	assert.True(t, out.Empty)
	assert.Equal(t, dto.EmptyListMessage, out.Message)
}

func TestSummary_EmpleadoNoConsultaCompras(t *testing.T) {
	be := seeded()
	uc := inventory.NewUseCase(be, 10)

	_, err := uc.Summary(context.Background(), employee, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, be.Called("ListPurchases"))
}

func TestSummary_EmpleadoSinCostos(t *testing.T) {
	uc := inventory.NewUseCase(seeded(), 10)

	out, err := uc.Summary(context.Background(), employee, dto.ListQuery{})
	require.NoError(t, err)
	assert.True(t, out.CostsHidden)
	for _, r := range out.Rows {
		assert.True(t, r.AvgCost.IsZero(), r.ProductName)
		assert.True(t, r.GrossMargin.IsZero(), r.ProductName)
	}

	out, err = uc.Summary(context.Background(), admin, dto.ListQuery{})
	require.NoError(t, err)
	assert.False(t, out.CostsHidden)
	assert.True(t, decimal.NewFromInt(600).Equal(out.Rows[0].AvgCost))
	assert.True(t, decimal.NewFromInt(1200).Equal(out.Rows[0].GrossMargin))
}

func TestSummary_ErrorDelBackendSePropaga(t *testing.T) {
	be := seeded()
	be.Errs["ListReturns"] = domain.ErrBackendDown
	uc := inventory.NewUseCase(be, 10)

	_, err := uc.Summary(context.Background(), admin, dto.ListQuery{})
	assert.True(t, errors.Is(err, domain.ErrBackendDown))
}

func TestLedger_SaldoAcumulado(t *testing.T) {
	uc := inventory.NewUseCase(seeded(), 10)

	out, err := uc.Ledger(context.Background(), admin, "ACETAMINOFEN 500mg")
	require.NoError(t, err)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, 20, out.Entries[0].Balance)
	assert.Equal(t, 17, out.Balance)

	_, err = uc.Ledger(context.Background(), admin, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_EmpleadoAnclaAlStock(t *testing.T) {
	be := seeded()
	uc := inventory.NewUseCase(be, 10)

	out, err := uc.Ledger(context.Background(), employee, "Acetaminofén 500mg")
	require.NoError(t, err)
	assert.True(t, out.Partial)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, "sale", out.Entries[0].Kind)
	assert.Equal(t, 8, out.Balance)
	assert.GreaterOrEqual(t, out.Entries[0].Balance, 0)
	assert.Equal(t, 0, be.Called("ListPurchases"))
}

func TestLowStock(t *testing.T) {
	uc := inventory.NewUseCase(seeded(), 10)

	out, err := uc.LowStock(context.Background(), admin, dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "p1", out.Items[0].ProductID)
}

func TestExportCSV(t *testing.T) {
	uc := inventory.NewUseCase(seeded(), 10)
	var buf bytes.Buffer

	require.NoError(t, uc.ExportCSV(context.Background(), admin, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "product_id,product_name,in_catalog,stock,units_sold"))
	assert.Contains(t, lines[1], "Acetaminofén 500mg")
	assert.True(t, strings.HasSuffix(uc.ExportFilename(), ".csv"))
}
