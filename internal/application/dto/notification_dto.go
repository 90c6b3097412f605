package dto

import "time"

// NotificationResponse representación pública de una notificación.
type NotificationResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Severity  string            `json:"severity"`
	IsRead    bool              `json:"is_read"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// AuditLogResponse entrada del registro de actividad.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	BranchID   string    `json:"branch_id,omitempty"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditListResponse listado paginado del registro de actividad.
type AuditListResponse struct {
	Logs []AuditLogResponse `json:"logs"`
	Page PageResponse       `json:"page"`
}
