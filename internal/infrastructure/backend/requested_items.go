package backend

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

const pathRequestedItems = "/requestedItems"

func (c *Client) ListRequestedItems(ctx context.Context, token string) ([]entity.RequestedItem, error) {
	out := []entity.RequestedItem{}
	if err := c.get(ctx, pathRequestedItems, token, &out, "requestedItems", "items"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRequestedItem(ctx context.Context, token string, in interface{}) (*entity.RequestedItem, error) {
	var out entity.RequestedItem
	if err := c.post(ctx, pathRequestedItems, token, in, &out, "requestedItem", "item"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetRequestedItemStatus(ctx context.Context, token, id, status string) (*entity.RequestedItem, error) {
	var out entity.RequestedItem
	if err := c.put(ctx, resource(pathRequestedItems, id, "status"), token, statusBody{Status: status}, &out, "requestedItem", "item"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRequestedItem(ctx context.Context, token, id string) error {
	return c.delete(ctx, resource(pathRequestedItems, id), token)
}
