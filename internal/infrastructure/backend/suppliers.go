package backend

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

const pathSuppliers = "/suppliers"

func (c *Client) ListSuppliers(ctx context.Context, token string) ([]entity.Supplier, error) {
	out := []entity.Supplier{}
	if err := c.get(ctx, pathSuppliers, token, &out, "suppliers"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSupplier(ctx context.Context, token string, in interface{}) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := c.post(ctx, pathSuppliers, token, in, &out, "supplier"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, token, id string, in interface{}) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := c.put(ctx, resource(pathSuppliers, id), token, in, &out, "supplier"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, token, id string) error {
	return c.delete(ctx, resource(pathSuppliers, id), token)
}
