// Package testutil dobles en memoria de los puertos (backend, sesiones, carritos) para tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

var _ ports.Backend = (*Backend)(nil)

// Account usuario aceptado por el Login falso.
type Account struct {
	Password string
	Token    string
	User     entity.User
}

// Backend API de la farmacia en memoria. Errs[método] fuerza un error en esa llamada.
type Backend struct {
	mu sync.Mutex

	Accounts       map[string]Account // por email
	Users          []entity.User
	Products       []entity.Product
	Orders         []entity.Order
	Purchases      []entity.Purchase
	Returns        []entity.ReturnRecord
	Suppliers      []entity.Supplier
	Setup          map[string][]entity.SetupItem
	RequestedItems []entity.RequestedItem

	Errs  map[string]error
	Calls []string
	// LastBody último payload recibido en una escritura, serializado a JSON.
	LastBody []byte

	seq int
}

// NewBackend backend vacío.
func NewBackend() *Backend {
	return &Backend{
		Accounts: map[string]Account{},
		Setup:    map[string][]entity.SetupItem{},
		Errs:     map[string]error{},
	}
}

// AddAccount registra credenciales válidas para Login.
func (b *Backend) AddAccount(email, password, token string, user entity.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	user.Email = email
	b.Accounts[email] = Account{Password: password, Token: token, User: user}
}

// Called cuántas veces se invocó el método.
func (b *Backend) Called(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (b *Backend) enter(method string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, method)
	return b.Errs[method]
}

func (b *Backend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s%d", prefix, b.seq)
}

func notFound(path string) error {
	return &domain.BackendError{Status: http.StatusNotFound, Method: http.MethodGet, Path: path, Message: "no encontrado"}
}

// decode convierte el payload (formulario) al tipo del recurso pasando por JSON,
// igual que lo vería el backend real.
func (b *Backend) decode(in interface{}, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	b.LastBody = raw
	return json.Unmarshal(raw, out)
}

func (b *Backend) checkToken(token string) error {
	if token == "" {
		return &domain.BackendError{Status: http.StatusUnauthorized, Message: "token requerido"}
	}
	return nil
}

// ── auth ────────────────────────────────────────────────────────────────────

func (b *Backend) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	if err := b.enter("Login"); err != nil {
		return "", nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.Accounts[email]
	if !ok || acc.Password != password {
		return "", nil, &domain.BackendError{Status: http.StatusUnauthorized, Method: http.MethodPost, Path: "/auth/login", Message: "Credenciales inválidas"}
	}
	u := acc.User
	return acc.Token, &u, nil
}

func (b *Backend) Me(ctx context.Context, token string) (*entity.User, error) {
	if err := b.enter("Me"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.Accounts {
		if acc.Token == token {
			u := acc.User
			return &u, nil
		}
	}
	return nil, &domain.BackendError{Status: http.StatusUnauthorized, Path: "/auth/me", Message: "token inválido"}
}

func (b *Backend) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	if err := b.enter("ListUsers"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.User{}, b.Users...), nil
}

func (b *Backend) CreateUser(ctx context.Context, token string, in interface{}) (*entity.User, error) {
	if err := b.enter("CreateUser"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var u entity.User
	if err := b.decode(in, &u); err != nil {
		return nil, err
	}
	u.ID = b.nextID("u")
	b.Users = append(b.Users, u)
	return &u, nil
}

func (b *Backend) UpdateUser(ctx context.Context, token, id string, in interface{}) (*entity.User, error) {
	if err := b.enter("UpdateUser"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Users {
		if b.Users[i].ID == id {
			if err := b.decode(in, &b.Users[i]); err != nil {
				return nil, err
			}
			b.Users[i].ID = id
			u := b.Users[i]
			return &u, nil
		}
	}
	return nil, notFound("/auth/users/" + id)
}

func (b *Backend) DeleteUser(ctx context.Context, token, id string) error {
	if err := b.enter("DeleteUser"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Users {
		if b.Users[i].ID == id {
			b.Users = append(b.Users[:i], b.Users[i+1:]...)
			return nil
		}
	}
	return notFound("/auth/users/" + id)
}

// ── products ────────────────────────────────────────────────────────────────

func (b *Backend) ListProducts(ctx context.Context, token string) ([]entity.Product, error) {
	if err := b.enter("ListProducts"); err != nil {
		return nil, err
	}
	if err := b.checkToken(token); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.Product{}, b.Products...), nil
}

func (b *Backend) GetProduct(ctx context.Context, token, id string) (*entity.Product, error) {
	if err := b.enter("GetProduct"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.Products {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, notFound("/products/" + id)
}

func (b *Backend) CreateProduct(ctx context.Context, token string, in interface{}) (*entity.Product, error) {
	if err := b.enter("CreateProduct"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var p entity.Product
	if err := b.decode(in, &p); err != nil {
		return nil, err
	}
	p.ID = b.nextID("p")
	p.CreatedAt = time.Now()
	b.Products = append(b.Products, p)
	return &p, nil
}

func (b *Backend) UpdateProduct(ctx context.Context, token, id string, in interface{}) (*entity.Product, error) {
	if err := b.enter("UpdateProduct"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Products {
		if b.Products[i].ID == id {
			if err := b.decode(in, &b.Products[i]); err != nil {
				return nil, err
			}
			b.Products[i].ID = id
			out := b.Products[i]
			return &out, nil
		}
	}
	return nil, notFound("/products/" + id)
}

func (b *Backend) UpdateStock(ctx context.Context, token, id string, stock int) (*entity.Product, error) {
	if err := b.enter("UpdateStock"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Products {
		if b.Products[i].ID == id {
			b.Products[i].Stock = stock
			out := b.Products[i]
			return &out, nil
		}
	}
	return nil, notFound("/products/" + id)
}

func (b *Backend) DeleteProduct(ctx context.Context, token, id string) error {
	if err := b.enter("DeleteProduct"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Products {
		if b.Products[i].ID == id {
			b.Products = append(b.Products[:i], b.Products[i+1:]...)
			return nil
		}
	}
	return notFound("/products/" + id)
}

// ── orders ──────────────────────────────────────────────────────────────────

func (b *Backend) ListOrders(ctx context.Context, token, status string) ([]entity.Order, error) {
	if err := b.enter("ListOrders"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []entity.Order{}
	for _, o := range b.Orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (b *Backend) GetOrder(ctx context.Context, token, id string) (*entity.Order, error) {
	if err := b.enter("GetOrder"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range b.Orders {
		if o.ID == id {
			out := o
			return &out, nil
		}
	}
	return nil, notFound("/orders/" + id)
}

func (b *Backend) CreateOrder(ctx context.Context, token string, in interface{}) (*entity.Order, error) {
	if err := b.enter("CreateOrder"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var o entity.Order
	if err := b.decode(in, &o); err != nil {
		return nil, err
	}
	o.ID = b.nextID("o")
	if o.Status == "" {
		o.Status = entity.StatusPending
	}
	o.CreatedAt = time.Now()
	b.Orders = append(b.Orders, o)
	return &o, nil
}

func (b *Backend) SetOrderStatus(ctx context.Context, token, id, status string) (*entity.Order, error) {
	if err := b.enter("SetOrderStatus"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Orders {
		if b.Orders[i].ID == id {
			b.Orders[i].Status = status
			out := b.Orders[i]
			return &out, nil
		}
	}
	return nil, notFound("/orders/" + id)
}

func (b *Backend) DeleteOrder(ctx context.Context, token, id string) error {
	if err := b.enter("DeleteOrder"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Orders {
		if b.Orders[i].ID == id {
			b.Orders = append(b.Orders[:i], b.Orders[i+1:]...)
			return nil
		}
	}
	return notFound("/orders/" + id)
}

// ── purchases ───────────────────────────────────────────────────────────────

func (b *Backend) ListPurchases(ctx context.Context, token string) ([]entity.Purchase, error) {
	if err := b.enter("ListPurchases"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.Purchase{}, b.Purchases...), nil
}

func (b *Backend) CreatePurchase(ctx context.Context, token string, in interface{}) (*entity.Purchase, error) {
	if err := b.enter("CreatePurchase"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var p entity.Purchase
	if err := b.decode(in, &p); err != nil {
		return nil, err
	}
	p.ID = b.nextID("c")
	b.Purchases = append(b.Purchases, p)
	return &p, nil
}

func (b *Backend) UpdatePurchase(ctx context.Context, token, id string, in interface{}) (*entity.Purchase, error) {
	if err := b.enter("UpdatePurchase"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Purchases {
		if b.Purchases[i].ID == id {
			if err := b.decode(in, &b.Purchases[i]); err != nil {
				return nil, err
			}
			b.Purchases[i].ID = id
			out := b.Purchases[i]
			return &out, nil
		}
	}
	return nil, notFound("/purchases/" + id)
}

func (b *Backend) DeletePurchase(ctx context.Context, token, id string) error {
	if err := b.enter("DeletePurchase"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Purchases {
		if b.Purchases[i].ID == id {
			b.Purchases = append(b.Purchases[:i], b.Purchases[i+1:]...)
			return nil
		}
	}
	return notFound("/purchases/" + id)
}

// ── returns ─────────────────────────────────────────────────────────────────

func (b *Backend) ListReturns(ctx context.Context, token string) ([]entity.ReturnRecord, error) {
	if err := b.enter("ListReturns"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.ReturnRecord{}, b.Returns...), nil
}

func (b *Backend) CreateReturn(ctx context.Context, token string, in interface{}) (*entity.ReturnRecord, error) {
	if err := b.enter("CreateReturn"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var r entity.ReturnRecord
	if err := b.decode(in, &r); err != nil {
		return nil, err
	}
	r.ID = b.nextID("r")
	if r.Status == "" {
		r.Status = entity.StatusPending
	}
	b.Returns = append(b.Returns, r)
	return &r, nil
}

func (b *Backend) SetReturnStatus(ctx context.Context, token, id, status string) (*entity.ReturnRecord, error) {
	if err := b.enter("SetReturnStatus"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Returns {
		if b.Returns[i].ID == id {
			b.Returns[i].Status = status
			out := b.Returns[i]
			return &out, nil
		}
	}
	return nil, notFound("/returns/" + id)
}

// ── suppliers ───────────────────────────────────────────────────────────────

func (b *Backend) ListSuppliers(ctx context.Context, token string) ([]entity.Supplier, error) {
	if err := b.enter("ListSuppliers"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.Supplier{}, b.Suppliers...), nil
}

func (b *Backend) CreateSupplier(ctx context.Context, token string, in interface{}) (*entity.Supplier, error) {
	if err := b.enter("CreateSupplier"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var s entity.Supplier
	if err := b.decode(in, &s); err != nil {
		return nil, err
	}
	s.ID = b.nextID("s")
	b.Suppliers = append(b.Suppliers, s)
	return &s, nil
}

func (b *Backend) UpdateSupplier(ctx context.Context, token, id string, in interface{}) (*entity.Supplier, error) {
	if err := b.enter("UpdateSupplier"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Suppliers {
		if b.Suppliers[i].ID == id {
			if err := b.decode(in, &b.Suppliers[i]); err != nil {
				return nil, err
			}
			b.Suppliers[i].ID = id
			out := b.Suppliers[i]
			return &out, nil
		}
	}
	return nil, notFound("/suppliers/" + id)
}

func (b *Backend) DeleteSupplier(ctx context.Context, token, id string) error {
	if err := b.enter("DeleteSupplier"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Suppliers {
		if b.Suppliers[i].ID == id {
			b.Suppliers = append(b.Suppliers[:i], b.Suppliers[i+1:]...)
			return nil
		}
	}
	return notFound("/suppliers/" + id)
}

// ── setup ───────────────────────────────────────────────────────────────────

func (b *Backend) ListSetup(ctx context.Context, token, kind string) ([]entity.SetupItem, error) {
	if err := b.enter("ListSetup"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.SetupItem{}, b.Setup[kind]...), nil
}

func (b *Backend) CreateSetup(ctx context.Context, token, kind string, in interface{}) (*entity.SetupItem, error) {
	if err := b.enter("CreateSetup"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var s entity.SetupItem
	if err := b.decode(in, &s); err != nil {
		return nil, err
	}
	s.ID = b.nextID("cfg")
	b.Setup[kind] = append(b.Setup[kind], s)
	return &s, nil
}

func (b *Backend) UpdateSetup(ctx context.Context, token, kind, id string, in interface{}) (*entity.SetupItem, error) {
	if err := b.enter("UpdateSetup"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.Setup[kind]
	for i := range items {
		if items[i].ID == id {
			if err := b.decode(in, &items[i]); err != nil {
				return nil, err
			}
			items[i].ID = id
			out := items[i]
			return &out, nil
		}
	}
	return nil, notFound("/setup/" + kind + "/" + id)
}

func (b *Backend) DeleteSetup(ctx context.Context, token, kind, id string) error {
	if err := b.enter("DeleteSetup"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.Setup[kind]
	for i := range items {
		if items[i].ID == id {
			b.Setup[kind] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return notFound("/setup/" + kind + "/" + id)
}

// ── requested items ─────────────────────────────────────────────────────────

func (b *Backend) ListRequestedItems(ctx context.Context, token string) ([]entity.RequestedItem, error) {
	if err := b.enter("ListRequestedItems"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.RequestedItem{}, b.RequestedItems...), nil
}

func (b *Backend) CreateRequestedItem(ctx context.Context, token string, in interface{}) (*entity.RequestedItem, error) {
	if err := b.enter("CreateRequestedItem"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var r entity.RequestedItem
	if err := b.decode(in, &r); err != nil {
		return nil, err
	}
	r.ID = b.nextID("q")
	if r.Status == "" {
		r.Status = entity.StatusPending
	}
	b.RequestedItems = append(b.RequestedItems, r)
	return &r, nil
}

func (b *Backend) SetRequestedItemStatus(ctx context.Context, token, id, status string) (*entity.RequestedItem, error) {
	if err := b.enter("SetRequestedItemStatus"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.RequestedItems {
		if b.RequestedItems[i].ID == id {
			b.RequestedItems[i].Status = status
			out := b.RequestedItems[i]
			return &out, nil
		}
	}
	return nil, notFound("/requestedItems/" + id)
}

func (b *Backend) DeleteRequestedItem(ctx context.Context, token, id string) error {
	if err := b.enter("DeleteRequestedItem"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.RequestedItems {
		if b.RequestedItems[i].ID == id {
			b.RequestedItems = append(b.RequestedItems[:i], b.RequestedItems[i+1:]...)
			return nil
		}
	}
	return notFound("/requestedItems/" + id)
}
