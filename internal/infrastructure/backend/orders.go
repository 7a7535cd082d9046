package backend

import (
	"context"
	"net/url"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

const pathOrders = "/orders"

type statusBody struct {
	Status string `json:"status"`
}

// ListOrders GET /orders[?status=...]. status vacío trae todas.
func (c *Client) ListOrders(ctx context.Context, token, status string) ([]entity.Order, error) {
	path := pathOrders
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	out := []entity.Order{}
	if err := c.get(ctx, path, token, &out, "orders"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, token, id string) (*entity.Order, error) {
	var out entity.Order
	if err := c.get(ctx, resource(pathOrders, id), token, &out, "order"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, in interface{}) (*entity.Order, error) {
	var out entity.Order
	if err := c.post(ctx, pathOrders, token, in, &out, "order"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetOrderStatus PUT /orders/:id/status (aprobar / rechazar).
func (c *Client) SetOrderStatus(ctx context.Context, token, id, status string) (*entity.Order, error) {
	var out entity.Order
	if err := c.put(ctx, resource(pathOrders, id, "status"), token, statusBody{Status: status}, &out, "order"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, token, id string) error {
	return c.delete(ctx, resource(pathOrders, id), token)
}
