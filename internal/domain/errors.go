package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrSessionExpired    = errors.New("sesión expirada")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrBackendDown       = errors.New("el servidor de la farmacia no responde")
)

// BackendError respuesta no-2xx de la API REST de la farmacia.
type BackendError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Unwrap traduce el status HTTP del backend a los errores de dominio para que
// errors.Is funcione igual con errores locales y remotos.
func (e *BackendError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidInput
	}
	return nil
}

// ValidationError lista de campos inválidos de un formulario (campo → mensaje).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %d campo(s) inválido(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
