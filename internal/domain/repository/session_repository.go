package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia de sesiones del portal (DIP).
// GetByID devuelve (nil, nil) si la sesión no existe.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
