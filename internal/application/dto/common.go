package dto

// EmptyListMessage texto del estado "sin resultados" de los listados.
const EmptyListMessage = "No se encontraron resultados"

// ListQuery filtros aplicados en el portal sobre el payload ya traído del backend.
type ListQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Status   string `query:"status"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// DefaultPage aplica valores por defecto y topes a Limit/Offset.
func (q *ListQuery) DefaultPage() {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse vista de tabla: ítems de la página, total filtrado y estado vacío.
type ListResponse[T any] struct {
	Items   []T          `json:"items"`
	Page    PageResponse `json:"page"`
	Empty   bool         `json:"empty"`
	Message string       `json:"message,omitempty"`
}

// NewListResponse pagina items (ya filtrados) y marca el estado vacío.
func NewListResponse[T any](items []T, q ListQuery) ListResponse[T] {
	q.DefaultPage()
	total := len(items)
	start := q.Offset
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	out := ListResponse[T]{
		Items: page,
		Page:  PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	if total == 0 {
		out.Empty = true
		out.Message = EmptyListMessage
	}
	return out
}

// ErrorResponse cuerpo de error HTTP; el cliente lo muestra como notificación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse confirmación simple (toast de éxito).
type MessageResponse struct {
	Message string `json:"message"`
}

// MutationResponse resultado de una escritura: mensaje de confirmación, el registro
// afectado (nil en borrados) y el listado ya refrescado desde el backend.
type MutationResponse[T any] struct {
	Message string          `json:"message"`
	Item    *T              `json:"item,omitempty"`
	List    ListResponse[T] `json:"list"`
}
