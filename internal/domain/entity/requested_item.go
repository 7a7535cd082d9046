package entity

import "time"

// RequestedItem solicitud de reposición hecha por un empleado.
type RequestedItem struct {
	ID          string    `json:"_id"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Note        string    `json:"note,omitempty"`
	Status      string    `json:"status"`
	RequestedBy string    `json:"requestedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
