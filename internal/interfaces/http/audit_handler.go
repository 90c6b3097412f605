package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// AuditHandler expone el registro de actividad.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Registro de actividad de la empresa
// @Description  Un super administrador puede consultar cualquier empresa con
//
//	?company_id=...; el resto solo la propia.
//
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Empresa objetivo (solo super_admin)"
// @Param        limit       query  int     false  "Tamaño de página (max 100)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.AuditListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	resp, err := h.uc.List(GetTenant(c), c.Query("company_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
