package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/authz"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

// Local key para el TenantContext en Fiber.
const LocalTenant = "tenant"

// AuthMiddleware valida el Bearer Token JWT, recarga el usuario desde la DB
// (sus roles otorgados son los vigentes, no los del token) y deja el
// TenantContext inmutable en c.Locals. Usuario o empresa desactivados
// devuelven 401 aunque el token sea válido.
func AuthMiddleware(jwtSecret string, userRepo repository.UserRepository, companyRepo repository.CompanyRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if user == nil || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "ACCOUNT_SUSPENDED", Message: "cuenta desactivada"})
		}
		if user.CompanyID != "" {
			company, err := companyRepo.GetByID(user.CompanyID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
			}
			if company == nil || !company.IsActive {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "ACCOUNT_SUSPENDED", Message: "empresa desactivada"})
			}
		}

		roles, err := authz.ParseRoles(user.Roles)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "roles inválidos"})
		}
		activeRole := authz.Role(claims.ActiveRole)
		if claims.ActiveRole != "" {
			if activeRole, err = authz.ParseRole(claims.ActiveRole); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "rol activo inválido"})
			}
		}

		c.Locals(LocalTenant, authz.TenantContext{
			CompanyID:  user.CompanyID,
			BranchID:   user.BranchID,
			UserID:     user.ID,
			UserName:   user.Name,
			Roles:      roles,
			ActiveRole: activeRole,
		})
		return c.Next()
	}
}

// RequireRole corta la petición si el rol activo no pertenece al conjunto
// requerido. super_admin pasa siempre; sin rol activo declarado es 403 con
// código propio para que el cliente pida re-login con rol.
func RequireRole(required ...authz.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc := GetTenant(c)
		if err := authz.Authorize(tc, required...); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// GetTenant devuelve el TenantContext del contexto (después del middleware de
// auth). El valor cero (sin usuario ni roles) no pasa ninguna autorización.
func GetTenant(c *fiber.Ctx) authz.TenantContext {
	v := c.Locals(LocalTenant)
	if v == nil {
		return authz.TenantContext{}
	}
	tc, _ := v.(authz.TenantContext)
	return tc
}
