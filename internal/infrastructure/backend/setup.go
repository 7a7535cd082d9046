package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

const pathSetup = "/setup"

func setupPath(kind string) (string, error) {
	if !entity.ValidSetupKind(kind) {
		return "", fmt.Errorf("%w: colección de configuración %q", domain.ErrInvalidInput, kind)
	}
	return pathSetup + "/" + kind, nil
}

// ListSetup GET /setup/{categories|companies|unit-types}.
func (c *Client) ListSetup(ctx context.Context, token, kind string) ([]entity.SetupItem, error) {
	path, err := setupPath(kind)
	if err != nil {
		return nil, err
	}
	out := []entity.SetupItem{}
	if err := c.get(ctx, path, token, &out, kind); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSetup(ctx context.Context, token, kind string, in interface{}) (*entity.SetupItem, error) {
	path, err := setupPath(kind)
	if err != nil {
		return nil, err
	}
	var out entity.SetupItem
	if err := c.post(ctx, path, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSetup(ctx context.Context, token, kind, id string, in interface{}) (*entity.SetupItem, error) {
	path, err := setupPath(kind)
	if err != nil {
		return nil, err
	}
	var out entity.SetupItem
	if err := c.put(ctx, resource(path, id), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSetup(ctx context.Context, token, kind, id string) error {
	path, err := setupPath(kind)
	if err != nil {
		return err
	}
	return c.delete(ctx, resource(path, id), token)
}
