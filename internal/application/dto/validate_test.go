package dto_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
)

func validProduct() dto.ProductForm {
	return dto.ProductForm{
		Name:     "Acetaminofén 500mg",
		Category: "analgésicos",
		Company:  "Genfar",
		UnitType: "caja",
		Price:    decimal.NewFromInt(1500),
		Stock:    100,
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, got %v", err)
	return verr.Fields
}

func TestProductForm_StockFueraDeRango(t *testing.T) {
	for _, stock := range []int{-1, 50001, 1_000_000} {
		f := validProduct()
		f.Stock = stock
		err := dto.Validate(f)
		require.Error(t, err, "stock %d", stock)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Contains(t, fieldsOf(t, err), "stock")
	}
}

func TestProductForm_StockEnLimites(t *testing.T) {
	for _, stock := range []int{0, 1, 50000} {
		f := validProduct()
		f.Stock = stock
		assert.NoError(t, dto.Validate(f), "stock %d", stock)
	}
}

func TestProductForm_RequeridosYPrecioNegativo(t *testing.T) {
	f := dto.ProductForm{Price: decimal.NewFromInt(-5)}
	fields := fieldsOf(t, dto.Validate(f))
	assert.Equal(t, "es requerido", fields["name"])
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "company")
	assert.Contains(t, fields, "unitType")
	assert.Contains(t, fields, "price")
}

func TestOrderForm_ValidaLineas(t *testing.T) {
	f := dto.OrderForm{}
	assert.Contains(t, fieldsOf(t, dto.Validate(f)), "items")

	f.Items = []dto.OrderItemForm{{ProductID: "p1", ProductName: "X", Quantity: 0, Price: decimal.NewFromInt(1)}}
	assert.Contains(t, fieldsOf(t, dto.Validate(f)), "items[0].quantity")

	f.Items[0].Quantity = 2
	assert.NoError(t, dto.Validate(f))
}

func TestOrderForm_Total(t *testing.T) {
	f := dto.OrderForm{
		Discount: decimal.NewFromInt(500),
		Items: []dto.OrderItemForm{
			{Quantity: 2, Price: decimal.NewFromInt(1000)},
			{Quantity: 1, Price: decimal.NewFromInt(300)},
		},
	}
	assert.True(t, f.Total().Equal(decimal.NewFromInt(1800)))

	f.Discount = decimal.NewFromInt(10_000)
	assert.True(t, f.Total().IsZero())
}

func TestSupplierForm_EmailOpcional(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.SupplierForm{Name: "Droguería Central"}))
	fields := fieldsOf(t, dto.Validate(dto.SupplierForm{Name: "Droguería Central", Email: "no-es-email"}))
	assert.Equal(t, "debe ser un email válido", fields["email"])
}

func TestStatusForm_Oneof(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.StatusForm{Status: "fulfilled"}))
	assert.Contains(t, fieldsOf(t, dto.Validate(dto.StatusForm{Status: "cancelado"})), "status")
}

func TestNewListResponse_Vacio(t *testing.T) {
	out := dto.NewListResponse([]string{}, dto.ListQuery{})
	assert.True(t, out.Empty)
	assert.Equal(t, dto.EmptyListMessage, out.Message)
	assert.NotNil(t, out.Items)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestNewListResponse_Pagina(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	out := dto.NewListResponse(items, dto.ListQuery{Limit: 2, Offset: 3})
	assert.Equal(t, []int{4, 5}, out.Items)
	assert.Equal(t, 5, out.Page.Total)
	assert.False(t, out.Empty)

	out = dto.NewListResponse(items, dto.ListQuery{Limit: 2, Offset: 10})
	assert.Empty(t, out.Items)
	assert.False(t, out.Empty, "vacío solo cuando no hay resultados, no por la página")
}
