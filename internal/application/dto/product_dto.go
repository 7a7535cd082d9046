package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductForm formulario de creación/edición de producto.
// Stock acepta 0–50.000 unidades (entity.MinStockQuantity / MaxStockQuantity).
type ProductForm struct {
	Name          string          `json:"name" validate:"required,min=2,max=200"`
	SKU           string          `json:"sku" validate:"omitempty,max=100"`
	Description   string          `json:"description" validate:"omitempty,max=1000"`
	Category      string          `json:"category" validate:"required"`
	Company       string          `json:"company" validate:"required"`
	UnitType      string          `json:"unitType" validate:"required"`
	BatchNumber   string          `json:"batchNumber" validate:"omitempty,max=100"`
	Price         decimal.Decimal `json:"price" validate:"gte=0"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" validate:"gte=0"`
	Stock         int             `json:"stock" validate:"min=0,max=50000"`
	ExpiryDate    *time.Time      `json:"expiryDate"`
}

// StockForm ajuste directo de existencias desde la vista de inventario.
type StockForm struct {
	Stock int `json:"stock" validate:"min=0,max=50000"`
}

// ProductView fila de la tabla de productos.
type ProductView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Category      string          `json:"category,omitempty"`
	Company       string          `json:"company,omitempty"`
	UnitType      string          `json:"unitType,omitempty"`
	BatchNumber   string          `json:"batchNumber,omitempty"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Stock         int             `json:"stock"`
	ExpiryDate    *time.Time      `json:"expiryDate,omitempty"`
	Expired       bool            `json:"expired"`
	LowStock      bool            `json:"lowStock"`
}
