package entity

import "time"

// User representa un usuario del sistema. Un usuario puede tener varios roles
// otorgados; el rol activo de la sesión viaja en el token, no aquí.
// CompanyID vacío solo es válido para super administradores.
type User struct {
	ID           string
	CompanyID    string
	BranchID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Roles        []string // ver internal/domain/authz
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
