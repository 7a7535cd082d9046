package entity

import "time"

// ReturnRecord devolución de producto asociada a una orden.
type ReturnRecord struct {
	ID          string    `json:"_id"`
	OrderID     string    `json:"orderId"`
	ProductID   string    `json:"productId,omitempty"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
