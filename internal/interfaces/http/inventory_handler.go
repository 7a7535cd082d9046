package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-portal/internal/application/inventory"
)

// InventoryHandler expone el resumen de existencias, el kardex y el export CSV (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de existencias
// @Description  Agrega productos, órdenes aprobadas, compras y devoluciones en una fila por producto.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Producto o SKU"
// @Param        category  query  string  false  "Categoría"
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetSession(c), listQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos bajo el umbral de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[inventory.SummaryRow]
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), GetSession(c), listQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Kardex de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product  query  string  true  "Nombre del producto"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/ledger [get]
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	out, err := h.uc.Ledger(c.UserContext(), GetSession(c), c.Query("product"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Descargar el resumen de existencias en CSV
// @Tags         inventory
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/inventory/export.csv [get]
func (h *InventoryHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.UserContext(), GetSession(c), &buf); err != nil {
		return writeError(c, err)
	}
	c.Attachment(h.uc.ExportFilename())
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}
