// Package pos carrito del punto de venta y cobro. El carrito vive en PostgreSQL
// asociado a la sesión; al cobrar se crea la orden en el backend.
package pos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/application/usecase"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/repository"
)

// ReceiptPath ruta del comprobante PDF de una orden.
const ReceiptPath = "/api/pos/receipts/"

// Backend recursos usados por el POS.
type Backend interface {
	ports.ProductAPI
	ports.OrderAPI
}

// UseCase operaciones del carrito y cobro.
type UseCase struct {
	api       Backend
	carts     repository.CartRepository
	receipts  ports.ReceiptGenerator
	storeName string
	now       func() time.Time
}

// NewUseCase construye el caso de uso del POS.
func NewUseCase(api Backend, carts repository.CartRepository, receipts ports.ReceiptGenerator, storeName string) *UseCase {
	return &UseCase{api: api, carts: carts, receipts: receipts, storeName: storeName, now: time.Now}
}

// Cart carrito actual de la sesión (vacío si no existe).
func (uc *UseCase) Cart(ctx context.Context, sess *entity.Session) (*dto.CartResponse, error) {
	cart, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Add agrega unidades de un producto. La cantidad acumulada no puede superar el
// stock que reporta el backend en este momento.
func (uc *UseCase) Add(ctx context.Context, sess *entity.Session, in dto.AddToCartForm) (*dto.CartResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.api.GetProduct(ctx, sess.BackendToken, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Expired(uc.now()) {
		return nil, fmt.Errorf("%w: %s está vencido", domain.ErrConflict, product.Name)
	}
	cart, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	qty := in.Quantity
	idx := cart.Find(product.ID)
	if idx >= 0 {
		qty += cart.Items[idx].Quantity
	}
	if err := checkStock(product, qty); err != nil {
		return nil, err
	}
	line := entity.CartItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		UnitPrice:      product.Price,
		Quantity:       qty,
		AvailableStock: product.Stock,
	}
	if idx >= 0 {
		cart.Items[idx] = line
	} else {
		cart.Items = append(cart.Items, line)
	}
	return uc.save(ctx, cart)
}

// SetQuantity fija la cantidad de una línea; 0 la elimina.
func (uc *UseCase) SetQuantity(ctx context.Context, sess *entity.Session, productID string, in dto.CartQuantityForm) (*dto.CartResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	cart, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	idx := cart.Find(productID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if in.Quantity == 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return uc.save(ctx, cart)
	}
	product, err := uc.api.GetProduct(ctx, sess.BackendToken, productID)
	if err != nil {
		return nil, err
	}
	if err := checkStock(product, in.Quantity); err != nil {
		return nil, err
	}
	cart.Items[idx].Quantity = in.Quantity
	cart.Items[idx].UnitPrice = product.Price
	cart.Items[idx].AvailableStock = product.Stock
	return uc.save(ctx, cart)
}

// Remove quita una línea del carrito.
func (uc *UseCase) Remove(ctx context.Context, sess *entity.Session, productID string) (*dto.CartResponse, error) {
	return uc.SetQuantity(ctx, sess, productID, dto.CartQuantityForm{Quantity: 0})
}

// SetDetails cliente y descuento. El descuento no puede superar el subtotal.
func (uc *UseCase) SetDetails(ctx context.Context, sess *entity.Session, in dto.CartDetailsForm) (*dto.CartResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	cart, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	if in.Discount.GreaterThan(cart.Subtotal()) {
		return nil, &domain.ValidationError{Fields: map[string]string{"discount": "El descuento no puede superar el subtotal"}}
	}
	cart.CustomerName = strings.TrimSpace(in.CustomerName)
	cart.Discount = in.Discount
	return uc.save(ctx, cart)
}

// Clear vacía el carrito.
func (uc *UseCase) Clear(ctx context.Context, sess *entity.Session) error {
	return uc.carts.Delete(ctx, sess.ID)
}

// Checkout crea la orden en el backend con las líneas del carrito y lo vacía.
// La venta queda aprobada si quien cobra puede aprobar órdenes; si no, pendiente.
func (uc *UseCase) Checkout(ctx context.Context, sess *entity.Session) (*dto.CheckoutResponse, error) {
	cart, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// el stock pudo cambiar desde que se agregó cada línea
	products, err := uc.api.ListProducts(ctx, sess.BackendToken)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	now := uc.now()
	form := dto.OrderForm{CustomerName: cart.CustomerName, Discount: cart.Discount}
	for _, it := range cart.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s ya no está en el catálogo", domain.ErrNotFound, it.ProductName)
		}
		if p.Expired(now) {
			return nil, fmt.Errorf("%w: %s está vencido", domain.ErrConflict, p.Name)
		}
		if err := checkStock(p, it.Quantity); err != nil {
			return nil, err
		}
		form.Items = append(form.Items, dto.OrderItemForm{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice,
		})
	}
	if err := dto.Validate(form); err != nil {
		return nil, err
	}

	status := entity.StatusPending
	if usecase.CanApprove(sess.Role) {
		status = entity.StatusApproved
	}
	order, err := uc.api.CreateOrder(ctx, sess.BackendToken, usecase.NewOrderPayload(form, status, sess.UserID))
	if err != nil {
		return nil, err
	}
	if err := uc.carts.Delete(ctx, sess.ID); err != nil {
		return nil, fmt.Errorf("pos: orden %s creada pero no se pudo vaciar el carrito: %w", order.ID, err)
	}

	total := order.Total
	if total.IsZero() {
		total = form.Total()
	}
	st := order.Status
	if st == "" {
		st = status
	}
	return &dto.CheckoutResponse{
		OrderID:    order.ID,
		Status:     st,
		Total:      total,
		ReceiptURL: ReceiptPath + order.ID,
	}, nil
}

// Receipt PDF del comprobante de una orden ya creada.
func (uc *UseCase) Receipt(ctx context.Context, sess *entity.Session, orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, domain.ErrNotFound
	}
	order, err := uc.api.GetOrder(ctx, sess.BackendToken, orderID)
	if err != nil {
		return nil, err
	}
	if sess.Role == entity.RoleEmployee && order.CreatedBy != sess.UserID {
		return nil, domain.ErrForbidden
	}
	order.Total = order.EffectiveTotal()
	return uc.receipts.GenerateReceipt(ctx, uc.storeName, order, sess.Name)
}

func (uc *UseCase) load(ctx context.Context, sess *entity.Session) (*entity.Cart, error) {
	cart, err := uc.carts.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &entity.Cart{SessionID: sess.ID, Discount: decimal.Zero}
	}
	return cart, nil
}

func (uc *UseCase) save(ctx context.Context, cart *entity.Cart) (*dto.CartResponse, error) {
	// si se quitaron líneas el descuento se ajusta al nuevo subtotal
	if cart.Discount.GreaterThan(cart.Subtotal()) {
		cart.Discount = cart.Subtotal()
	}
	cart.UpdatedAt = uc.now()
	if err := uc.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

func checkStock(p *entity.Product, qty int) error {
	if qty > p.Stock {
		return fmt.Errorf("%w: %s tiene %d unidades disponibles", domain.ErrInsufficientStock, p.Name, p.Stock)
	}
	if qty > entity.MaxStockQuantity {
		return &domain.ValidationError{Fields: map[string]string{"quantity": "La cantidad no puede superar 50000"}}
	}
	return nil
}

func toCartResponse(c *entity.Cart) *dto.CartResponse {
	out := &dto.CartResponse{
		CustomerName: c.CustomerName,
		Items:        make([]dto.CartLine, 0, len(c.Items)),
		Subtotal:     c.Subtotal(),
		Discount:     c.Discount,
		Total:        c.Total(),
		Empty:        len(c.Items) == 0,
	}
	for _, it := range c.Items {
		out.Units += it.Quantity
		out.Items = append(out.Items, dto.CartLine{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			UnitPrice:      it.UnitPrice,
			Quantity:       it.Quantity,
			AvailableStock: it.AvailableStock,
			Subtotal:       it.Subtotal(),
		})
	}
	return out
}
