package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/repository"
)

var (
	_ repository.SessionRepository = (*SessionRepo)(nil)
	_ repository.CartRepository    = (*CartRepo)(nil)
)

// SessionRepo sesiones en memoria.
type SessionRepo struct {
	mu       sync.Mutex
	Sessions map[string]entity.Session
}

// NewSessionRepo repositorio vacío.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{Sessions: map[string]entity.Session{}}
}

func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sessions[s.ID] = *s
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Sessions, id)
	return nil
}

func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.Sessions {
		if s.Expired(now) {
			delete(r.Sessions, id)
			n++
		}
	}
	return n, nil
}

// CartRepo carritos en memoria. Sessions, si no es nil, simula la llave foránea.
type CartRepo struct {
	mu       sync.Mutex
	Carts    map[string]entity.Cart
	Sessions *SessionRepo
}

// NewCartRepo repositorio vacío.
func NewCartRepo(sessions *SessionRepo) *CartRepo {
	return &CartRepo{Carts: map[string]entity.Cart{}, Sessions: sessions}
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Carts[sessionID]
	if !ok {
		return nil, nil
	}
	c.Items = append([]entity.CartItem{}, c.Items...)
	return &c, nil
}

func (r *CartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	if r.Sessions != nil {
		if s, _ := r.Sessions.GetByID(ctx, cart.SessionID); s == nil {
			return domain.ErrSessionExpired
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *cart
	c.Items = append([]entity.CartItem{}, cart.Items...)
	c.UpdatedAt = time.Now()
	r.Carts[cart.SessionID] = c
	return nil
}

func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Carts, sessionID)
	return nil
}
