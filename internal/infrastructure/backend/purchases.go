package backend

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

const pathPurchases = "/purchases"

func (c *Client) ListPurchases(ctx context.Context, token string) ([]entity.Purchase, error) {
	out := []entity.Purchase{}
	if err := c.get(ctx, pathPurchases, token, &out, "purchases"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePurchase(ctx context.Context, token string, in interface{}) (*entity.Purchase, error) {
	var out entity.Purchase
	if err := c.post(ctx, pathPurchases, token, in, &out, "purchase"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePurchase(ctx context.Context, token, id string, in interface{}) (*entity.Purchase, error) {
	var out entity.Purchase
	if err := c.put(ctx, resource(pathPurchases, id), token, in, &out, "purchase"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePurchase(ctx context.Context, token, id string) error {
	return c.delete(ctx, resource(pathPurchases, id), token)
}
