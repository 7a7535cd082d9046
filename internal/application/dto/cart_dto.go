package dto

import (
	"github.com/shopspring/decimal"
)

// AddToCartForm agregar producto al carrito del POS.
type AddToCartForm struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=50000"`
}

// CartQuantityForm fija la cantidad de una línea (0 la elimina).
type CartQuantityForm struct {
	Quantity int `json:"quantity" validate:"min=0,max=50000"`
}

// CartDetailsForm datos de cabecera del carrito.
type CartDetailsForm struct {
	CustomerName string          `json:"customerName" validate:"omitempty,max=200"`
	Discount     decimal.Decimal `json:"discount" validate:"gte=0"`
}

// CartLine línea del carrito en la vista.
type CartLine struct {
	ProductID      string          `json:"productId"`
	ProductName    string          `json:"productName"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	AvailableStock int             `json:"availableStock"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CartResponse vista del carrito con totales.
type CartResponse struct {
	CustomerName string          `json:"customerName,omitempty"`
	Items        []CartLine      `json:"items"`
	Units        int             `json:"units"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	Empty        bool            `json:"empty"`
}

// CheckoutResponse resultado del cobro: orden creada en el backend.
type CheckoutResponse struct {
	OrderID    string          `json:"orderId"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	ReceiptURL string          `json:"receiptUrl"`
}
