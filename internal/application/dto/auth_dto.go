package dto

import "time"

// LoginRequest credenciales de acceso. ActiveRole es el rol que el usuario
// multi-rol elige para la sesión; opcional para usuarios de un solo rol
// (se toma ese) y para super administradores.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	ActiveRole string `json:"active_role,omitempty"`
}

// LoginResponse token + datos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest alta de usuario dentro de la empresa del admin que registra.
type RegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
	BranchID string   `json:"branch_id,omitempty"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id,omitempty"`
	BranchID  string    `json:"branch_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
