package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/usecase"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/infrastructure/backend"
)

// newServer levanta un backend falso que responde body en la ruta indicada y
// guarda la última petición recibida.
func newServer(t *testing.T, method, path string, status int, body string) (*backend.Client, *http.Request, *[]byte) {
	t.Helper()
	var last http.Request
	var lastBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = *r
		lastBody, _ = io.ReadAll(r.Body)
		if r.Method != method || r.URL.Path != "/api"+path {
			http.Error(w, `{"message":"ruta inesperada"}`, http.StatusTeapot)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/api", 2*time.Second, nil), &last, &lastBody
}

func TestListProducts_ArregloDesnudo(t *testing.T) {
	c, req, _ := newServer(t, http.MethodGet, "/products", 200,
		`[{"_id":"p1","name":"Acetaminofén","price":1500,"stock":20,"expiryDate":"2027-01-31T00:00:00Z"}]`)

	out, err := c.ListProducts(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ID)
	assert.Equal(t, 20, out[0].Stock)
	assert.Equal(t, "1500", out[0].Price.String())
	require.NotNil(t, out[0].ExpiryDate)
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
}

func TestListProducts_SobreData(t *testing.T) {
	c, _, _ := newServer(t, http.MethodGet, "/products", 200, `{"success":true,"data":[{"_id":"p1"},{"_id":"p2"}]}`)
	out, err := c.ListProducts(context.Background(), "t")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestListProducts_ClaveDelRecurso(t *testing.T) {
	c, _, _ := newServer(t, http.MethodGet, "/products", 200, `{"products":[{"_id":"p9"}]}`)
	out, err := c.ListProducts(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p9", out[0].ID)
}

func TestListProducts_Vacio(t *testing.T) {
	c, _, _ := newServer(t, http.MethodGet, "/products", 200, `[]`)
	out, err := c.ListProducts(context.Background(), "t")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestErrorDelBackend_MensajeYUnwrap(t *testing.T) {
	c, _, _ := newServer(t, http.MethodGet, "/products/p1", 404, `{"message":"Producto no existe"}`)

	_, err := c.GetProduct(context.Background(), "t", "p1")
	require.Error(t, err)

	var berr *domain.BackendError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, 404, berr.Status)
	assert.Equal(t, "Producto no existe", berr.Message)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, backend.IsBackendError(err))
}

func TestErrorDelBackend_CampoErrorYTextoPlano(t *testing.T) {
	c, _, _ := newServer(t, http.MethodPost, "/auth/login", 401, `{"error":"Credenciales inválidas"}`)
	_, _, err := c.Login(context.Background(), "a@b.co", "x")
	var berr *domain.BackendError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, "Credenciales inválidas", berr.Message)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	c2, _, _ := newServer(t, http.MethodGet, "/orders", 500, `boom`)
	_, err = c2.ListOrders(context.Background(), "t", "")
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, "boom", berr.Message)
}

func TestLogin_SinTokenBearerYConUsuario(t *testing.T) {
	c, req, body := newServer(t, http.MethodPost, "/auth/login", 200,
		`{"token":"jwt-backend","user":{"_id":"u1","name":"Ana","email":"ana@farmacia.co","role":"admin"}}`)

	tok, user, err := c.Login(context.Background(), "ana@farmacia.co", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "jwt-backend", tok)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Empty(t, req.Header.Get("Authorization"))

	var sent map[string]string
	require.NoError(t, json.Unmarshal(*body, &sent))
	assert.Equal(t, "ana@farmacia.co", sent["email"])
}

func TestSetOrderStatus_RutaYCuerpo(t *testing.T) {
	c, _, body := newServer(t, http.MethodPut, "/orders/o1/status", 200, `{"order":{"_id":"o1","status":"approved"}}`)

	o, err := c.SetOrderStatus(context.Background(), "t", "o1", entity.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, o.Status)
	assert.JSONEq(t, `{"status":"approved"}`, string(*body))
}

func TestListOrders_FiltroDeEstado(t *testing.T) {
	c, req, _ := newServer(t, http.MethodGet, "/orders", 200, `[]`)
	_, err := c.ListOrders(context.Background(), "t", "pending")
	require.NoError(t, err)
	assert.Equal(t, "pending", req.URL.Query().Get("status"))
}

func TestDelete_SinCuerpo(t *testing.T) {
	c, _, _ := newServer(t, http.MethodDelete, "/suppliers/s1", 204, ``)
	assert.NoError(t, c.DeleteSupplier(context.Background(), "t", "s1"))
}

func TestSetup_ColeccionInvalida(t *testing.T) {
	c := backend.NewClient("http://127.0.0.1:1/api", time.Second, nil)
	_, err := c.ListSetup(context.Background(), "t", "warehouses")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSetup_Categorias(t *testing.T) {
	c, _, _ := newServer(t, http.MethodGet, "/setup/categories", 200, `{"categories":[{"_id":"c1","name":"Analgésicos"}]}`)
	out, err := c.ListSetup(context.Background(), "t", entity.SetupCategories)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Analgésicos", out[0].Name)
}

func TestBackendCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := backend.NewClient(url+"/api", time.Second, nil)
	_, err := c.ListProducts(context.Background(), "t")
	assert.True(t, errors.Is(err, domain.ErrBackendDown))
}

func TestCreateOrder_MontosComoNumeros(t *testing.T) {
	c, _, body := newServer(t, http.MethodPost, "/orders", 201, `{"order":{"_id":"o9","status":"pending"}}`)
	form := dto.OrderForm{
		Discount: decimal.RequireFromString("0.5"),
		Items: []dto.OrderItemForm{
			{ProductID: "p1", ProductName: "Acetaminofén", Quantity: 2, Price: decimal.RequireFromString("4500.50")},
		},
	}

	out, err := c.CreateOrder(context.Background(), "t", usecase.NewOrderPayload(form, entity.StatusPending, "u-emp"))
	require.NoError(t, err)
	assert.Equal(t, "o9", out.ID)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(*body, &sent))
	assert.Equal(t, float64(9000.5), sent["total"])
	assert.Equal(t, float64(0.5), sent["discount"])
	items, ok := sent["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, float64(4500.5), line["price"])
	assert.Equal(t, float64(2), line["quantity"])
}
