package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Límites de stock aceptados por los formularios de producto y compra.
const (
	MinStockQuantity = 0
	MaxStockQuantity = 50000
)

// Product representa un medicamento o artículo del catálogo, tal como lo devuelve el backend.
// Stock es la existencia actual reportada por el servidor; el portal nunca la recalcula.
type Product struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Company       string          `json:"company,omitempty"`
	UnitType      string          `json:"unitType,omitempty"`
	BatchNumber   string          `json:"batchNumber,omitempty"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Stock         int             `json:"stock"`
	ExpiryDate    *time.Time      `json:"expiryDate,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Expired indica si el lote ya venció respecto a now.
func (p Product) Expired(now time.Time) bool {
	return p.ExpiryDate != nil && p.ExpiryDate.Before(now)
}
