package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de aprobación compartidos por órdenes, devoluciones y solicitudes.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusFulfilled = "fulfilled" // solo solicitudes de artículos
)

// Order es una venta u orden registrada en el backend (POS o pedido de empleado).
type Order struct {
	ID           string          `json:"_id"`
	Items        []OrderItem     `json:"items"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Discount     decimal.Decimal `json:"discount"`
	CustomerName string          `json:"customerName,omitempty"`
	CreatedBy    string          `json:"createdBy,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrderItem línea de una orden. ProductName se guarda desnormalizado por el backend.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Subtotal cantidad × precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Approved indica si la orden fue aprobada.
func (o Order) Approved() bool { return o.Status == StatusApproved }

// ItemsTotal suma los subtotales de las líneas (sin descuento).
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// EffectiveTotal total registrado o, si el backend no lo envió, la suma de las
// líneas menos el descuento. Nunca es negativo.
func (o Order) EffectiveTotal() decimal.Decimal {
	if !o.Total.IsZero() {
		return o.Total
	}
	total := o.ItemsTotal().Sub(o.Discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
