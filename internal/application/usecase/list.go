package usecase

import (
	"time"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// filter conserva los elementos para los que keep devuelve true.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func mapItems[T, V any](items []T, fn func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// mutated arma la respuesta de una escritura con el listado refrescado.
// Si el refresco falla la escritura ya ocurrió: se devuelve el error igual.
func mutated[T any](msg string, item *T, list dto.ListResponse[T], err error) (*dto.MutationResponse[T], error) {
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse[T]{Message: msg, Item: item, List: list}, nil
}

func token(sess *entity.Session) string {
	if sess == nil {
		return ""
	}
	return sess.BackendToken
}

// validStatus valida un cambio de estado contra los permitidos por el recurso.
func validStatus(status string, allowed ...string) error {
	for _, a := range allowed {
		if status == a {
			return nil
		}
	}
	return &domain.ValidationError{Fields: map[string]string{"status": "Estado no permitido"}}
}

func requireID(id string) error {
	if id == "" {
		return &domain.ValidationError{Fields: map[string]string{"id": "El identificador es obligatorio"}}
	}
	return nil
}

func dateOrNow(t *time.Time, now time.Time) time.Time {
	if t == nil || t.IsZero() {
		return now
	}
	return *t
}
