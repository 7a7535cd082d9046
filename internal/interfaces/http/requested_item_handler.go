package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/usecase"
)

// RequestedItemHandler productos solicitados por clientes que no hay en existencia.
type RequestedItemHandler struct {
	uc *usecase.RequestedItemUseCase
}

// NewRequestedItemHandler construye el handler.
func NewRequestedItemHandler(uc *usecase.RequestedItemUseCase) *RequestedItemHandler {
	return &RequestedItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitudes de productos
// @Tags         requested-items
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        search  query  string  false  "Producto o cliente"
// @Success      200  {object}  dto.ListResponse[dto.RequestedItemView]
// @Router       /api/requested-items [get]
func (h *RequestedItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c), listQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/requested-items
func (h *RequestedItemHandler) Create(c *fiber.Ctx) error {
	var in dto.RequestedItemForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetStatus PUT /api/requested-items/:id/status
func (h *RequestedItemHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.StatusForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetStatus(c.UserContext(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/requested-items/:id
func (h *RequestedItemHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
