package ports

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// Puertos de salida hacia la API REST de la farmacia. Todos reciben el token
// bearer del usuario (sacado de la sesión) porque la autorización real la hace
// el backend. Los implementa *backend.Client.

// AuthAPI /auth/*.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (token string, user *entity.User, err error)
	Me(ctx context.Context, token string) (*entity.User, error)
	ListUsers(ctx context.Context, token string) ([]entity.User, error)
	CreateUser(ctx context.Context, token string, in interface{}) (*entity.User, error)
	UpdateUser(ctx context.Context, token, id string, in interface{}) (*entity.User, error)
	DeleteUser(ctx context.Context, token, id string) error
}

// ProductAPI /products/*.
type ProductAPI interface {
	ListProducts(ctx context.Context, token string) ([]entity.Product, error)
	GetProduct(ctx context.Context, token, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, token string, in interface{}) (*entity.Product, error)
	UpdateProduct(ctx context.Context, token, id string, in interface{}) (*entity.Product, error)
	UpdateStock(ctx context.Context, token, id string, stock int) (*entity.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

// OrderAPI /orders/*.
type OrderAPI interface {
	ListOrders(ctx context.Context, token, status string) ([]entity.Order, error)
	GetOrder(ctx context.Context, token, id string) (*entity.Order, error)
	CreateOrder(ctx context.Context, token string, in interface{}) (*entity.Order, error)
	SetOrderStatus(ctx context.Context, token, id, status string) (*entity.Order, error)
	DeleteOrder(ctx context.Context, token, id string) error
}

// PurchaseAPI /purchases/*.
type PurchaseAPI interface {
	ListPurchases(ctx context.Context, token string) ([]entity.Purchase, error)
	CreatePurchase(ctx context.Context, token string, in interface{}) (*entity.Purchase, error)
	UpdatePurchase(ctx context.Context, token, id string, in interface{}) (*entity.Purchase, error)
	DeletePurchase(ctx context.Context, token, id string) error
}

// ReturnAPI /returns/*.
type ReturnAPI interface {
	ListReturns(ctx context.Context, token string) ([]entity.ReturnRecord, error)
	CreateReturn(ctx context.Context, token string, in interface{}) (*entity.ReturnRecord, error)
	SetReturnStatus(ctx context.Context, token, id, status string) (*entity.ReturnRecord, error)
}

// SupplierAPI /suppliers/*.
type SupplierAPI interface {
	ListSuppliers(ctx context.Context, token string) ([]entity.Supplier, error)
	CreateSupplier(ctx context.Context, token string, in interface{}) (*entity.Supplier, error)
	UpdateSupplier(ctx context.Context, token, id string, in interface{}) (*entity.Supplier, error)
	DeleteSupplier(ctx context.Context, token, id string) error
}

// SetupAPI /setup/{categories|companies|unit-types}.
type SetupAPI interface {
	ListSetup(ctx context.Context, token, kind string) ([]entity.SetupItem, error)
	CreateSetup(ctx context.Context, token, kind string, in interface{}) (*entity.SetupItem, error)
	UpdateSetup(ctx context.Context, token, kind, id string, in interface{}) (*entity.SetupItem, error)
	DeleteSetup(ctx context.Context, token, kind, id string) error
}

// RequestedItemAPI /requestedItems/*.
type RequestedItemAPI interface {
	ListRequestedItems(ctx context.Context, token string) ([]entity.RequestedItem, error)
	CreateRequestedItem(ctx context.Context, token string, in interface{}) (*entity.RequestedItem, error)
	SetRequestedItemStatus(ctx context.Context, token, id, status string) (*entity.RequestedItem, error)
	DeleteRequestedItem(ctx context.Context, token, id string) error
}

// Backend todos los recursos juntos.
type Backend interface {
	AuthAPI
	ProductAPI
	OrderAPI
	PurchaseAPI
	ReturnAPI
	SupplierAPI
	SetupAPI
	RequestedItemAPI
}
