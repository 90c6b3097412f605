package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/authz"
)

// AuthHandler maneja login, registro de usuarios y datos de demo.
type AuthHandler struct {
	uc        *auth.AuthUseCase
	allowSeed bool
}

// NewAuthHandler construye el handler. allowSeed habilita /seed (solo fuera
// de producción).
func NewAuthHandler(uc *auth.AuthUseCase, allowSeed bool) *AuthHandler {
	return &AuthHandler{uc: uc, allowSeed: allowSeed}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Autentica con email y contraseña. Usuarios multi-rol declaran
//
//	active_role para la sesión; usuarios de un solo rol lo obtienen
//	automático.
//
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password, active_role (opcional)"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Register godoc
// @Summary      Registrar usuario en la empresa
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, roles"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	tc := GetTenant(c)
	if err := authz.Authorize(tc, authz.RoleAdmin); err != nil {
		return respondError(c, err)
	}
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.RegisterUser(tc.CompanyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Seed godoc
// @Summary      Cargar datos de demostración
// @Description  Crea la empresa demo con un usuario por rol. Deshabilitado en
//
//	producción.
//
// @Tags         auth
// @Produce      json
// @Success      201  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/seed [post]
func (h *AuthHandler) Seed(c *fiber.Ctx) error {
	if !h.allowSeed {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	resp, err := h.uc.Seed()
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
