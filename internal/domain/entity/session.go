package entity

import "time"

// Session reemplaza lo que el cliente web guardaba en el almacenamiento del navegador:
// token del backend y perfil del usuario.
type Session struct {
	ID           string
	UserID       string
	Name         string
	Email        string
	Role         string
	BackendToken string // en claro solo en memoria; se persiste cifrado
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Expired indica si la sesión venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
