package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
)

// writeError traduce errores de dominio y del backend a la respuesta HTTP que el
// cliente muestra como notificación. Los 5xx se registran en el log.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Int("status", status).Msg("error en petición")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "Revise los campos del formulario", Fields: verr.Fields}
	}

	var berr *domain.BackendError
	isBackend := errors.As(err, &berr)

	switch {
	case errors.Is(err, domain.ErrSessionExpired),
		isBackend && berr.Status == fiber.StatusUnauthorized && berr.Path != "/auth/login":
		// un 401 del backend fuera del login significa que su token ya no sirve
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "La sesión expiró, inicie sesión nuevamente"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: backendMessage(berr, isBackend, "Credenciales inválidas")}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: backendMessage(berr, isBackend, "No tiene permiso para esta acción")}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: backendMessage(berr, isBackend, "Recurso no encontrado")}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: backendMessage(berr, isBackend, err.Error())}
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMPTY_CART", Message: "El carrito está vacío"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: backendMessage(berr, isBackend, "Datos inválidos")}
	case errors.Is(err, domain.ErrBackendDown):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: "El servidor de la farmacia no responde"}
	case isBackend:
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "BACKEND_ERROR", Message: berr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "Error interno"}
}

func backendMessage(berr *domain.BackendError, ok bool, fallback string) string {
	if ok && berr.Message != "" {
		return berr.Message
	}
	return fallback
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// listQuery lee search, category, status, limit y offset de la query string.
func listQuery(c *fiber.Ctx) dto.ListQuery {
	var q dto.ListQuery
	_ = c.QueryParser(&q)
	q.DefaultPage()
	return q
}
