package usecase

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/authz"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// NotificationUseCase lectura y marcado de notificaciones del usuario.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

// ListMine lista las notificaciones dirigidas al usuario o a alguno de sus
// roles (las 50 más recientes).
func (uc *NotificationUseCase) ListMine(tc authz.TenantContext) ([]dto.NotificationResponse, error) {
	roles := make([]string, 0, len(tc.Roles))
	for _, r := range tc.Roles {
		roles = append(roles, string(r))
	}
	ns, err := uc.notificationRepo.ListForUser(tc.CompanyID, tc.UserID, roles, 50)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Severity:  n.Severity,
			IsRead:    n.IsRead,
			Data:      n.Data,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una notificación como leída (único campo mutable).
func (uc *NotificationUseCase) MarkRead(tc authz.TenantContext, id string) error {
	n, err := uc.notificationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if n == nil || n.CompanyID != tc.CompanyID {
		return domain.ErrNotFound
	}
	return uc.notificationRepo.MarkRead(id)
}
