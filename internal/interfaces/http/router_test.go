package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Farmacia-portal/internal/application/analytics"
	"github.com/jhoicas/Farmacia-portal/internal/application/auth"
	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/inventory"
	"github.com/jhoicas/Farmacia-portal/internal/application/pos"
	"github.com/jhoicas/Farmacia-portal/internal/application/usecase"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	apphttp "github.com/jhoicas/Farmacia-portal/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-portal/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testPassword = "clave123"
	testCookie   = "farmacia_session"
)

type fakeReceipts struct{}

func (fakeReceipts) GenerateReceipt(ctx context.Context, storeName string, order *entity.Order, cashier string) ([]byte, error) {
	return []byte("%PDF-1.4 " + order.ID), nil
}

// buildTestApp arma el router completo sobre el backend y los repositorios en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *testutil.Backend) {
	t.Helper()
	be := testutil.NewBackend()
	be.AddAccount("root@farmacia.co", testPassword, "backend-root", entity.User{ID: "u-root", Name: "Root", Role: entity.RoleSuperAdmin})
	be.AddAccount("admin@farmacia.co", testPassword, "backend-admin", entity.User{ID: "u-admin", Name: "Ana", Role: entity.RoleAdmin})
	be.AddAccount("emp@farmacia.co", testPassword, "backend-emp", entity.User{ID: "u-emp", Name: "Pedro", Role: entity.RoleEmployee})

	sessions := testutil.NewSessionRepo()
	carts := testutil.NewCartRepo(sessions)
	authUC := auth.NewAuthUseCase(be, sessions, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "farmacia-test"})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       usecase.NewProductUseCase(be, 10),
		OrderUC:         usecase.NewOrderUseCase(be),
		PurchaseUC:      usecase.NewPurchaseUseCase(be),
		ReturnUC:        usecase.NewReturnUseCase(be),
		SupplierUC:      usecase.NewSupplierUseCase(be),
		SetupUC:         usecase.NewSetupUseCase(be),
		RequestedItemUC: usecase.NewRequestedItemUseCase(be),
		UserUC:          usecase.NewUserUseCase(be),
		InventoryUC:     inventory.NewUseCase(be, 10),
		POSUC:           pos.NewUseCase(be, carts, fakeReceipts{}, "Farmacia Test"),
		DashboardUC:     appanalytics.NewDashboardUseCase(be, 10),
		Cookie:          apphttp.CookieConfig{Name: testCookie},
	})
	return app, be
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, app *fiber.App, email string) dto.LoginResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, email)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return out
}

func productForm(stock int) map[string]interface{} {
	return map[string]interface{}{
		"name": "Acetaminofén 500mg", "category": "Analgésicos", "company": "Genfar",
		"unitType": "Caja", "price": "4500", "purchasePrice": "3000", "stock": stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y navegación por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CadaRolRecibeSuTablero(t *testing.T) {
	app, _ := buildTestApp(t)
	cases := []struct {
		email string
		home  string
	}{
		{"root@farmacia.co", "/superadmin"},
		{"admin@farmacia.co", "/admin"},
		{"emp@farmacia.co", "/employee"},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			out := login(t, app, tc.email)
			assert.Equal(t, tc.home, out.Home)
			assert.NotEmpty(t, out.Token)
		})
	}
}

func TestLogin_FijaCookieHttpOnly(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@farmacia.co", Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, testCookie+"=")
	assert.Contains(t, strings.ToLower(cookie), "httponly")
}

func TestLogin_CredencialesInvalidas_401(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@farmacia.co", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoute_SinSesionRedirigeALogin(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/route?path=/admin/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.RouteResponse
	decode(t, resp, &out)
	assert.False(t, out.Allow)
	assert.Equal(t, "/login", out.Redirect)
}

func TestRoute_TableroAjenoRedirigeAlPropio(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "emp@farmacia.co").Token

	resp := doJSON(t, app, http.MethodGet, "/api/route?path=/admin", tok, nil)
	var out dto.RouteResponse
	decode(t, resp, &out)
	assert.Equal(t, "/employee", out.Redirect)

	resp = doJSON(t, app, http.MethodGet, "/api/route?path=/employee/pos", tok, nil)
	decode(t, resp, &out)
	assert.True(t, out.Allow)
}

func TestShell_NavegacionDelRol(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "emp@farmacia.co").Token
	resp := doJSON(t, app, http.MethodGet, "/api/shell", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ShellResponse
	decode(t, resp, &out)
	assert.Equal(t, "/employee", out.Home)
	for _, item := range out.Navigation {
		assert.NotEqual(t, "users", item.Key, "el empleado no ve usuarios")
		assert.NotEqual(t, "products", item.Key)
		assert.True(t, strings.HasPrefix(item.Path, "/employee"))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware de sesión y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinToken_401(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "MISSING_TOKEN", out.Code)
}

func TestAuthMiddleware_TokenInvalido_401(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/products", "no-es-un-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "INVALID_TOKEN", out.Code)
}

func TestAuthMiddleware_AceptaCookie(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: tok})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.SessionUser
	decode(t, resp, &out)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestLogout_InvalidaLaSesion(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token

	resp := doJSON(t, app, http.MethodPost, "/api/auth/logout", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_SinRol_401(t *testing.T) {
	app := fiber.New()
	app.Get("/x",
		func(c *fiber.Ctx) error {
			c.Locals(apphttp.LocalSession, &entity.Session{ID: "s1"})
			return c.Next()
		},
		apphttp.RequireRole(entity.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "MISSING_ROLE", out.Code)
}

func TestUsers_SoloSuperadmin(t *testing.T) {
	app, _ := buildTestApp(t)
	cases := []struct {
		email string
		want  int
	}{
		{"root@farmacia.co", http.StatusOK},
		{"admin@farmacia.co", http.StatusForbidden},
		{"emp@farmacia.co", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			tok := login(t, app, tc.email).Token
			resp := doJSON(t, app, http.MethodGet, "/api/users", tok, nil)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestOrders_EmpleadoNoAprueba_403(t *testing.T) {
	app, be := buildTestApp(t)
	be.Orders = []entity.Order{{ID: "o1", Status: entity.StatusPending, CreatedBy: "u-emp"}}
	tok := login(t, app, "emp@farmacia.co").Token

	resp := doJSON(t, app, http.MethodPut, "/api/orders/o1/approve", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, be.Called("SetOrderStatus"))
}

func TestPurchases_EmpleadoSinAcceso_403(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "emp@farmacia.co").Token
	resp := doJSON(t, app, http.MethodGet, "/api/purchases", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOrders_EmpleadoSoloSusOrdenesYRecibos(t *testing.T) {
	app, be := buildTestApp(t)
	be.Orders = []entity.Order{
		{ID: "o-emp", Status: entity.StatusPending, CreatedBy: "u-emp", Total: decimal.NewFromInt(100)},
		{ID: "o-admin", Status: entity.StatusApproved, CreatedBy: "u-admin", Total: decimal.NewFromInt(100)},
		{ID: "o-anon", Status: entity.StatusApproved, Total: decimal.NewFromInt(100)},
	}
	emp := login(t, app, "emp@farmacia.co").Token

	resp := doJSON(t, app, http.MethodGet, "/api/orders/o-emp", emp, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/api/orders/o-admin", emp, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, pos.ReceiptPath+"o-emp", emp, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for _, id := range []string{"o-admin", "o-anon"} {
		resp = doJSON(t, app, http.MethodGet, pos.ReceiptPath+id, emp, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, id)
	}

	admin := login(t, app, "admin@farmacia.co").Token
	resp = doJSON(t, app, http.MethodGet, pos.ReceiptPath+"o-anon", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formularios y listados
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_StockFueraDeRango_400(t *testing.T) {
	app, be := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token

	for _, stock := range []int{-1, 50001} {
		resp := doJSON(t, app, http.MethodPost, "/api/products", tok, productForm(stock))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, stock)
		var out dto.ErrorResponse
		decode(t, resp, &out)
		assert.Equal(t, "VALIDATION", out.Code)
		assert.Contains(t, out.Fields, "stock")
	}
	assert.Equal(t, 0, be.Called("CreateProduct"))
}

func TestProducts_CrearDevuelveListaActualizada(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token

	resp := doJSON(t, app, http.MethodPost, "/api/products", tok, productForm(50000))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.MutationResponse[dto.ProductView]
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Message)
	require.NotNil(t, out.Item)
	assert.Equal(t, 50000, out.Item.Stock)
	assert.Len(t, out.List.Items, 1)
}

func TestProducts_ListaVacia(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "emp@farmacia.co").Token
	resp := doJSON(t, app, http.MethodGet, "/api/products?search=nada", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ListResponse[dto.ProductView]
	decode(t, resp, &out)
	assert.True(t, out.Empty)
	assert.Equal(t, dto.EmptyListMessage, out.Message)
	assert.Empty(t, out.Items)
}

func TestProducts_BackendNoEncontrado_404(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token
	resp := doJSON(t, app, http.MethodGet, "/api/products/no-existe", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetup_TipoDesconocido_404(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token
	resp := doJSON(t, app, http.MethodGet, "/api/setup/planetas", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// POS e inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestPOS_CobroYRecibo(t *testing.T) {
	app, be := buildTestApp(t)
	be.Products = []entity.Product{{ID: "p1", Name: "Ibuprofeno", Price: decimal.NewFromInt(2500), Stock: 10}}
	tok := login(t, app, "emp@farmacia.co").Token

	resp := doJSON(t, app, http.MethodPost, "/api/pos/cart/items", tok, dto.AddToCartForm{ProductID: "p1", Quantity: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/pos/cart/items", tok, dto.AddToCartForm{ProductID: "p1", Quantity: 20})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var errOut dto.ErrorResponse
	decode(t, resp, &errOut)
	assert.Equal(t, "INSUFFICIENT_STOCK", errOut.Code)

	resp = doJSON(t, app, http.MethodPost, "/api/pos/checkout", tok, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CheckoutResponse
	decode(t, resp, &out)
	assert.Equal(t, entity.StatusPending, out.Status, "la venta del empleado queda pendiente")
	assert.True(t, out.Total.Equal(decimal.NewFromInt(5000)))

	resp = doJSON(t, app, http.MethodGet, out.ReceiptURL, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestPOS_CarritoVacio_400(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token
	resp := doJSON(t, app, http.MethodPost, "/api/pos/checkout", tok, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "EMPTY_CART", out.Code)
}

func TestInventory_ExportCSV(t *testing.T) {
	app, be := buildTestApp(t)
	be.Products = []entity.Product{{ID: "p1", Name: "Loratadina", SKU: "LOR-10", Stock: 3}}
	tok := login(t, app, "admin@farmacia.co").Token

	resp := doJSON(t, app, http.MethodGet, "/api/inventory/export.csv", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Loratadina")
}

func TestBackendCaido_503(t *testing.T) {
	app, be := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token
	be.Errs["ListProducts"] = domain.ErrBackendDown
	resp := doJSON(t, app, http.MethodGet, "/api/products", tok, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestBackend401_SesionExpirada(t *testing.T) {
	app, be := buildTestApp(t)
	tok := login(t, app, "admin@farmacia.co").Token
	be.Errs["ListOrders"] = &domain.BackendError{Status: http.StatusUnauthorized, Method: http.MethodGet, Path: "/orders", Message: "jwt expired"}

	resp := doJSON(t, app, http.MethodGet, "/api/orders", tok, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "SESSION_EXPIRED", out.Code)
}
