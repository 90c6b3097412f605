package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del puerto AuditLogRepository sobre PostgreSQL.
// La tabla es append-only: nunca UPDATE ni DELETE desde la aplicación.
type AuditLogRepo struct {
	q Querier
}

func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

const auditColumns = `id, company_id, branch_id, user_id, action, details, entity_type, entity_id, ip_address, created_at`

func (r *AuditLogRepo) Create(e *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.CompanyID, nullIfEmpty(e.BranchID), e.UserID, e.Action,
		e.Details, e.EntityType, nullIfEmpty(e.EntityID),
		nullIfEmpty(e.IPAddress), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditLog
	for rows.Next() {
		var e entity.AuditLog
		var branchID, entityID, ipAddress *string
		err := rows.Scan(&e.ID, &e.CompanyID, &branchID, &e.UserID, &e.Action,
			&e.Details, &e.EntityType, &entityID, &ipAddress, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.BranchID = emptyIfNull(branchID)
		e.EntityID = emptyIfNull(entityID)
		e.IPAddress = emptyIfNull(ipAddress)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *AuditLogRepo) CountByCompany(companyID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM audit_logs WHERE company_id = $1`, companyID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count audit logs: %w", err)
	}
	return total, nil
}
