package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// CompanyHandler maneja empresas y sucursales.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa (solo super administrador)
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "name, plan, ..."
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Me godoc
// @Summary      Empresa del usuario autenticado
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/me [get]
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	resp, err := h.uc.Me(GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// CreateBranch godoc
// @Summary      Crear sucursal
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "name, address, phone"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/branches [post]
func (h *CompanyHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateBranch(GetTenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListBranches godoc
// @Summary      Listar sucursales de la empresa
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchResponse
// @Router       /api/branches [get]
func (h *CompanyHandler) ListBranches(c *fiber.Ctx) error {
	resp, err := h.uc.ListBranches(GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
