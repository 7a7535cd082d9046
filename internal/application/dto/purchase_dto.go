package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseForm formulario de compra a proveedor.
type PurchaseForm struct {
	SupplierID    string          `json:"supplierId" validate:"required"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName" validate:"required"`
	Quantity      int             `json:"quantity" validate:"min=1,max=50000"`
	UnitCost      decimal.Decimal `json:"unitCost" validate:"gte=0"`
	InvoiceNumber string          `json:"invoiceNumber" validate:"omitempty,max=100"`
	PurchaseDate  *time.Time      `json:"purchaseDate"`
}

// PurchaseView fila de la tabla de compras.
type PurchaseView struct {
	ID            string          `json:"id"`
	SupplierName  string          `json:"supplierName,omitempty"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
}
