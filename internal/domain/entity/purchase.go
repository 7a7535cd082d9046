package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra a proveedor que ingresa mercancía.
type Purchase struct {
	ID            string          `json:"_id"`
	SupplierID    string          `json:"supplierId"`
	SupplierName  string          `json:"supplierName,omitempty"`
	ProductID     string          `json:"productId,omitempty"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TotalCost cantidad × costo unitario.
func (p Purchase) TotalCost() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
