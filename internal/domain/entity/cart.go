package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart carrito del punto de venta, uno por sesión.
type Cart struct {
	SessionID    string
	CustomerName string
	Discount     decimal.Decimal
	Items        []CartItem
	UpdatedAt    time.Time
}

// CartItem línea del carrito. AvailableStock es el stock del producto al momento de agregarlo.
type CartItem struct {
	ProductID      string
	ProductName    string
	UnitPrice      decimal.Decimal
	Quantity       int
	AvailableStock int
}

// Subtotal precio × cantidad.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Find devuelve el índice de la línea del producto o -1.
func (c *Cart) Find(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Subtotal suma de líneas.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Total subtotal menos descuento, nunca negativo.
func (c *Cart) Total() decimal.Decimal {
	t := c.Subtotal().Sub(c.Discount)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}
