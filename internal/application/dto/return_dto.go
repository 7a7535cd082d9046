package dto

import "time"

// ReturnForm formulario de devolución.
type ReturnForm struct {
	OrderID     string `json:"orderId" validate:"required"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1,max=50000"`
	Reason      string `json:"reason" validate:"required,min=3,max=500"`
}

// ReturnView fila de la tabla de devoluciones.
type ReturnView struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
