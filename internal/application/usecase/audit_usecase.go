package usecase

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/authz"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// AuditUseCase lectura del registro de actividad. Append-only: no exposición
// de escritura por HTTP.
type AuditUseCase struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(auditRepo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// List lista el registro de la empresa del usuario. Un super_admin puede
// apuntar a otra empresa vía targetCompanyID.
func (uc *AuditUseCase) List(tc authz.TenantContext, targetCompanyID string, page dto.PageRequest) (*dto.AuditListResponse, error) {
	page.DefaultPage()

	companyID := tc.CompanyID
	if tc.IsSuperAdmin() && targetCompanyID != "" {
		companyID = targetCompanyID
	}

	total, err := uc.auditRepo.CountByCompany(companyID)
	if err != nil {
		return nil, err
	}
	logs, err := uc.auditRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuditListResponse{
		Logs: make([]dto.AuditLogResponse, 0, len(logs)),
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, dto.AuditLogResponse{
			ID:         l.ID,
			CompanyID:  l.CompanyID,
			BranchID:   l.BranchID,
			UserID:     l.UserID,
			Action:     l.Action,
			Details:    l.Details,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			IPAddress:  l.IPAddress,
			CreatedAt:  l.CreatedAt,
		})
	}
	return resp, nil
}
