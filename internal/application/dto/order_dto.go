package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemForm línea de una orden.
type OrderItemForm struct {
	ProductID   string          `json:"productId" validate:"required"`
	ProductName string          `json:"productName" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=1,max=50000"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
}

// OrderForm formulario de orden (pedido de empleado o venta del POS).
type OrderForm struct {
	CustomerName string          `json:"customerName" validate:"omitempty,max=200"`
	Discount     decimal.Decimal `json:"discount" validate:"gte=0"`
	Items        []OrderItemForm `json:"items" validate:"required,min=1,dive"`
}

// Total suma de líneas menos descuento (nunca negativo).
func (f OrderForm) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range f.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	total = total.Sub(f.Discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// OrderView fila de la tabla de órdenes.
type OrderView struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customerName,omitempty"`
	CreatedBy    string          `json:"createdBy,omitempty"`
	ItemCount    int             `json:"itemCount"`
	Units        int             `json:"units"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"createdAt"`
}
