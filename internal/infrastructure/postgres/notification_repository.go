package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre
// PostgreSQL. roles va como text[] y data como jsonb.
type NotificationRepo struct {
	q Querier
}

func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `id, company_id, branch_id, user_id, roles, title, message, severity, is_read, data, created_at`

func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.CompanyID, nullIfEmpty(n.BranchID), nullIfEmpty(n.UserID),
		n.Roles, n.Title, n.Message, n.Severity, n.IsRead, n.Data, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	var branchID, userID *string
	err := row.Scan(
		&n.ID, &n.CompanyID, &branchID, &userID, &n.Roles, &n.Title,
		&n.Message, &n.Severity, &n.IsRead, &n.Data, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.BranchID = emptyIfNull(branchID)
	n.UserID = emptyIfNull(userID)
	return &n, nil
}

func (r *NotificationRepo) GetByID(id string) (*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	n, err := scanNotification(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// ListForUser lista las notificaciones más recientes dirigidas al usuario o a
// alguno de sus roles. roles && $3 usa el operador de solapamiento de arrays.
func (r *NotificationRepo) ListForUser(companyID, userID string, roles []string, limit int) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE company_id = $1 AND (user_id = $2 OR roles && $3)
		ORDER BY created_at DESC LIMIT $4`
	rows, err := r.q.Query(context.Background(), query, companyID, userID, roles, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepo) MarkRead(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
