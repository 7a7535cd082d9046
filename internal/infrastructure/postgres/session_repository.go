package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/repository"
	"github.com/jhoicas/Farmacia-portal/pkg/tokencrypt"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL.
// El token del backend se guarda cifrado (tokencrypt).
type SessionRepo struct {
	q      Querier
	cipher *tokencrypt.Cipher
}

// NewSessionRepository construye el adaptador de sesiones.
func NewSessionRepository(q Querier, cipher *tokencrypt.Cipher) *SessionRepo {
	return &SessionRepo{q: q, cipher: cipher}
}

// Create persiste una sesión nueva.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	sealed, err := r.cipher.Seal(s.BackendToken)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO portal_sessions (id, user_id, name, email, role, backend_token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query, s.ID, s.UserID, s.Name, s.Email, s.Role, sealed, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión; (nil, nil) si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	query := `
		SELECT id::text, user_id, name, email, role, backend_token, created_at, expires_at
		FROM portal_sessions WHERE id = $1`
	var (
		s      entity.Session
		sealed []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Email, &s.Role, &sealed, &s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	token, err := r.cipher.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.BackendToken = token
	return &s, nil
}

// Delete elimina la sesión (y en cascada su carrito).
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM portal_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired purga sesiones vencidas y devuelve cuántas eliminó.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM portal_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
