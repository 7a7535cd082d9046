package dto

import "time"

// SupplierForm formulario de proveedor.
type SupplierForm struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address" validate:"omitempty,max=300"`
	Company string `json:"company" validate:"omitempty,max=200"`
	TaxID   string `json:"taxId" validate:"omitempty,max=20"` // NIT; se normaliza a 000000000-0
}

// SetupForm formulario de categoría, empresa o tipo de unidad.
type SetupForm struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// RequestedItemForm solicitud de reposición de un empleado.
type RequestedItemForm struct {
	ProductName string `json:"productName" validate:"required,min=2,max=200"`
	Quantity    int    `json:"quantity" validate:"min=1,max=50000"`
	Note        string `json:"note" validate:"omitempty,max=500"`
}

// StatusForm cambio de estado de una solicitud.
type StatusForm struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected fulfilled"`
}

// SupplierView fila de la tabla de proveedores.
type SupplierView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Company string `json:"company,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
}

// SetupView fila de categorías, empresas o tipos de unidad.
type SetupView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RequestedItemView fila de la tabla de solicitudes.
type RequestedItemView struct {
	ID          string    `json:"id"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Note        string    `json:"note,omitempty"`
	Status      string    `json:"status"`
	RequestedBy string    `json:"requestedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
