package backend

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

const (
	pathLogin = "/auth/login"
	pathMe    = "/auth/me"
	pathUsers = "/auth/users"
)

type loginResponse struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"accessToken"`
	User        *entity.User `json:"user"`
}

// Login autentica contra /auth/login. No lleva token.
func (c *Client) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	in := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.post(ctx, pathLogin, "", in, &out); err != nil {
		return "", nil, err
	}
	token := out.Token
	if token == "" {
		token = out.AccessToken
	}
	return token, out.User, nil
}

// Me perfil del dueño del token.
func (c *Client) Me(ctx context.Context, token string) (*entity.User, error) {
	var out entity.User
	if err := c.get(ctx, pathMe, token, &out, "user"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	out := []entity.User{}
	if err := c.get(ctx, pathUsers, token, &out, "users"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, in interface{}) (*entity.User, error) {
	var out entity.User
	if err := c.post(ctx, pathUsers, token, in, &out, "user"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, in interface{}) (*entity.User, error) {
	var out entity.User
	if err := c.put(ctx, resource(pathUsers, id), token, in, &out, "user"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.delete(ctx, resource(pathUsers, id), token)
}
