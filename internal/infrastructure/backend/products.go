package backend

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

const pathProducts = "/products"

func (c *Client) ListProducts(ctx context.Context, token string) ([]entity.Product, error) {
	out := []entity.Product{}
	if err := c.get(ctx, pathProducts, token, &out, "products"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, token, id string) (*entity.Product, error) {
	var out entity.Product
	if err := c.get(ctx, resource(pathProducts, id), token, &out, "product"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, in interface{}) (*entity.Product, error) {
	var out entity.Product
	if err := c.post(ctx, pathProducts, token, in, &out, "product"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, in interface{}) (*entity.Product, error) {
	var out entity.Product
	if err := c.put(ctx, resource(pathProducts, id), token, in, &out, "product"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStock PUT /products/:id/stock {"stock": n}.
func (c *Client) UpdateStock(ctx context.Context, token, id string, stock int) (*entity.Product, error) {
	var out entity.Product
	body := map[string]int{"stock": stock}
	if err := c.put(ctx, resource(pathProducts, id, "stock"), token, body, &out, "product"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.delete(ctx, resource(pathProducts, id), token)
}
