package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// CartRepository persistencia del carrito del POS, uno por sesión.
// Get devuelve (nil, nil) si la sesión aún no tiene carrito.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
