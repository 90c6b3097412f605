// Package authz implementa la decisión de autorización por roles como función
// pura, sin dependencias de HTTP ni de persistencia. El middleware solo
// traduce el resultado a códigos de estado.
package authz

import "github.com/jhoicas/pos-api/internal/domain"

// Role es el tipo cerrado de roles del sistema.
type Role string

const (
	RoleSales      Role = "sales"
	RolePicker     Role = "picker"
	RoleAccountant Role = "accountant"
	RoleWarehouse  Role = "warehouse"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// validRoles conjunto cerrado; cualquier string fuera de aquí se rechaza.
var validRoles = map[Role]bool{
	RoleSales:      true,
	RolePicker:     true,
	RoleAccountant: true,
	RoleWarehouse:  true,
	RoleAdmin:      true,
	RoleSuperAdmin: true,
}

// ParseRole valida un rol recibido como string (claims, requests).
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !validRoles[r] {
		return "", domain.ErrInvalidInput
	}
	return r, nil
}

// ParseRoles valida una lista de roles. Lista vacía es válida (usuario sin
// roles no pasa ninguna puerta, pero el token puede existir).
func ParseRoles(ss []string) ([]Role, error) {
	roles := make([]Role, 0, len(ss))
	for _, s := range ss {
		r, err := ParseRole(s)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// TenantContext es el contexto inmutable de la petición: empresa, sucursal,
// usuario, roles otorgados y rol activo declarado. Se construye una sola vez
// en el middleware de auth y se pasa por valor; nunca se muta.
type TenantContext struct {
	CompanyID  string
	BranchID   string
	UserID     string
	UserName   string
	Roles      []Role
	ActiveRole Role // vacío si el token no declaró rol activo
}

// IsSuperAdmin indica si el usuario posee la capacidad super_admin
// (se evalúa sobre los roles otorgados, no sobre el rol activo).
func (tc TenantContext) IsSuperAdmin() bool {
	for _, r := range tc.Roles {
		if r == RoleSuperAdmin {
			return true
		}
	}
	return false
}

// HasRole indica si el rol está en el conjunto otorgado.
func (tc TenantContext) HasRole(role Role) bool {
	for _, r := range tc.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize decide el acceso a una operación que declara los roles aceptados.
// Reglas:
//   - super_admin pasa siempre (bypass incondicional, cross-tenant).
//   - Sin rol activo declarado: ErrNoActiveRole.
//   - El rol activo debe estar otorgado al usuario y pertenecer al conjunto
//     requerido; si no, ErrForbidden.
func Authorize(tc TenantContext, required ...Role) error {
	if tc.IsSuperAdmin() {
		return nil
	}
	if tc.ActiveRole == "" {
		return domain.ErrNoActiveRole
	}
	if !tc.HasRole(tc.ActiveRole) {
		return domain.ErrForbidden
	}
	for _, r := range required {
		if tc.ActiveRole == r {
			return nil
		}
	}
	return domain.ErrForbidden
}
