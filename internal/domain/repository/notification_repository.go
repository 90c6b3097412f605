package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para Notification.
// Solo IsRead se actualiza después de creada.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	GetByID(id string) (*entity.Notification, error)
	// ListForUser lista las más recientes dirigidas al usuario o a alguno de
	// sus roles, dentro de su empresa.
	ListForUser(companyID, userID string, roles []string, limit int) ([]*entity.Notification, error)
	MarkRead(id string) error
}

// AuditLogRepository define el puerto para el registro de actividad
// (append-only: solo insert y lectura).
type AuditLogRepository interface {
	Create(e *entity.AuditLog) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error)
	CountByCompany(companyID string) (int, error)
}
