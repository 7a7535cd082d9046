package backend

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

const pathReturns = "/returns"

func (c *Client) ListReturns(ctx context.Context, token string) ([]entity.ReturnRecord, error) {
	out := []entity.ReturnRecord{}
	if err := c.get(ctx, pathReturns, token, &out, "returns"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReturn(ctx context.Context, token string, in interface{}) (*entity.ReturnRecord, error) {
	var out entity.ReturnRecord
	if err := c.post(ctx, pathReturns, token, in, &out, "return"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetReturnStatus(ctx context.Context, token, id, status string) (*entity.ReturnRecord, error) {
	var out entity.ReturnRecord
	if err := c.put(ctx, resource(pathReturns, id, "status"), token, statusBody{Status: status}, &out, "return"); err != nil {
		return nil, err
	}
	return &out, nil
}
