package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// NotificationHandler maneja las notificaciones del usuario autenticado.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// ListMine godoc
// @Summary      Mis notificaciones
// @Description  Las más recientes dirigidas al usuario o a alguno de sus roles.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	resp, err := h.uc.ListMine(GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la notificación"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(GetTenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "notificación marcada como leída"})
}
