// Package backend implementa el cliente tipado de la API REST de la farmacia.
// La API es un colaborador externo: el portal solo conoce rutas y formas JSON.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa todos los puertos.
var _ ports.Backend = (*Client)(nil)

func init() {
	// La API guarda precios, costos y totales como números; un decimal entre
	// comillas llega como string. Afecta también las respuestas del portal,
	// que el front consume como números.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	maxResponseBytes = 4 << 20
	maxErrorMessage  = 300
)

// Client adaptador HTTP de la API de la farmacia. Sin reintentos ni caché:
// cada llamada es una petición y su error se devuelve tal cual al caso de uso.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. baseURL incluye el prefijo /api.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("backend"),
	}
}

// do ejecuta la petición y decodifica la respuesta en out (si no es nil).
// keys son los nombres bajo los que el backend puede envolver el recurso
// además de "data" (p. ej. {"products": [...]}).
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}, keys ...string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend inalcanzable")
		if ctx.Err() != nil {
			return fmt.Errorf("backend: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("%w: %v", domain.ErrBackendDown, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("backend: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		berr := &domain.BackendError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: errorMessage(rawBody, resp.Status),
		}
		c.log.Warn().Int("status", berr.Status).Str("method", method).Str("path", path).Str("message", berr.Message).Msg("backend respondió error")
		return berr
	}

	if out == nil || len(bytes.TrimSpace(rawBody)) == 0 {
		return nil
	}
	payload := unwrap(rawBody, keys...)
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("backend: decodificar %s %s: %w", method, path, err)
	}
	return nil
}

// unwrap acepta las formas que devuelve el backend: el recurso desnudo, un sobre
// {"data": ...} o un objeto con el recurso bajo una de las claves indicadas.
func unwrap(raw []byte, keys ...string) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return trimmed
	}
	for _, k := range append([]string{"data"}, keys...) {
		if v, ok := obj[k]; ok && len(v) > 0 && string(v) != "null" {
			return v
		}
	}
	return trimmed
}

// errorMessage extrae el mensaje de error del cuerpo ({"message"} o {"error"}) o usa el texto crudo.
func errorMessage(raw []byte, status string) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		var s string
		if len(body.Error) > 0 && json.Unmarshal(body.Error, &s) == nil && s != "" {
			return s
		}
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return status
	}
	if len(msg) > maxErrorMessage {
		msg = msg[:maxErrorMessage] + "…"
	}
	return msg
}

func (c *Client) get(ctx context.Context, path, token string, out interface{}, keys ...string) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out, keys...)
}

func (c *Client) post(ctx context.Context, path, token string, body, out interface{}, keys ...string) error {
	return c.do(ctx, http.MethodPost, path, token, body, out, keys...)
}

func (c *Client) put(ctx context.Context, path, token string, body, out interface{}, keys ...string) error {
	return c.do(ctx, http.MethodPut, path, token, body, out, keys...)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// resource arma "/<base>/<id>[/<suffix>]" escapando el id.
func resource(base, id string, suffix ...string) string {
	p := base + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// IsBackendError indica si err viene de una respuesta no-2xx del backend.
func IsBackendError(err error) bool {
	var berr *domain.BackendError
	return errors.As(err, &berr)
}
