package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/sale"
)

// PickerHandler maneja la cola de preparación de pedidos del día.
type PickerHandler struct {
	uc *sale.UseCase
}

// NewPickerHandler construye el handler.
func NewPickerHandler(uc *sale.UseCase) *PickerHandler {
	return &PickerHandler{uc: uc}
}

// PendingOrders godoc
// @Summary      Pedidos del día sin preparar
// @Tags         picker
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/picker/orders [get]
func (h *PickerHandler) PendingOrders(c *fiber.Ctx) error {
	resp, err := h.uc.PendingOrders(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// MarkPrepared godoc
// @Summary      Marcar un pedido como preparado
// @Description  Transición única: un pedido ya preparado devuelve 409.
// @Tags         picker
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/picker/orders/{id}/prepare [put]
func (h *PickerHandler) MarkPrepared(c *fiber.Ctx) error {
	resp, err := h.uc.MarkPrepared(c.Context(), GetTenant(c), c.Params("id"), c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
