package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/effects"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/authz"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// findOwnSale obtiene una venta verificando pertenencia al tenant.
// super_admin puede operar cross-tenant.
func (uc *UseCase) findOwnSale(tc authz.TenantContext, saleID string) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != tc.CompanyID && !tc.IsSuperAdmin() {
		return nil, domain.ErrNotFound // no revelar existencia cross-tenant
	}
	return s, nil
}

// RequestRefund inicia el ciclo de reembolso: none -> requested. La máquina
// es de un solo sentido; cualquier otro estado de partida es inválido.
// Notifica a contabilidad/admin con semántica best-effort.
func (uc *UseCase) RequestRefund(ctx context.Context, tc authz.TenantContext, saleID string, in dto.RefundRequest, ip string) (*dto.SaleResponse, error) {
	s, err := uc.findOwnSale(tc, saleID)
	if err != nil {
		return nil, err
	}
	if !s.CanRequestRefund() {
		return nil, domain.ErrInvalidStateTransition
	}

	reason := in.Reason
	if reason == "" {
		reason = "Customer Return"
	}
	s.RefundStatus = entity.RefundRequested
	s.RefundReason = reason
	s.UpdatedAt = time.Now()
	if err := uc.saleRepo.UpdateRefund(s); err != nil {
		return nil, err
	}

	effects.Fire(uc.log, "refund-requested-notification", func() error {
		return uc.notificationRepo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			CompanyID: s.CompanyID,
			BranchID:  s.BranchID,
			Roles:     []string{string(authz.RoleAccountant), string(authz.RoleAdmin)},
			Title:     "Solicitud de reembolso",
			Message:   fmt.Sprintf("Se solicitó un reembolso de %s para la venta #%s", s.TotalAmount.StringFixed(2), shortID(s.ID)),
			Severity:  entity.SeverityInfo,
			Data:      map[string]string{"sale_id": s.ID},
			CreatedAt: time.Now(),
		})
	})
	effects.Fire(uc.log, "audit-refund-requested", func() error {
		return uc.auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			CompanyID:  s.CompanyID,
			BranchID:   s.BranchID,
			UserID:     tc.UserID,
			Action:     entity.ActionRefundRequested,
			Details:    fmt.Sprintf("Reembolso solicitado para la venta %s. Motivo: %s", s.ID, reason),
			EntityType: "Sale",
			EntityID:   s.ID,
			IPAddress:  ip,
			CreatedAt:  time.Now(),
		})
	})

	return toSaleResponse(s), nil
}

// ApproveRefund avanza requested -> approved. Aprobar no revierte el stock ni
// recalcula totales: el reembolso es puramente financiero en este diseño.
func (uc *UseCase) ApproveRefund(ctx context.Context, tc authz.TenantContext, saleID, ip string) (*dto.SaleResponse, error) {
	s, err := uc.findOwnSale(tc, saleID)
	if err != nil {
		return nil, err
	}
	if !s.CanApproveRefund() {
		return nil, domain.ErrInvalidStateTransition
	}

	s.RefundStatus = entity.RefundApproved
	s.UpdatedAt = time.Now()
	if err := uc.saleRepo.UpdateRefund(s); err != nil {
		return nil, err
	}

	effects.Fire(uc.log, "audit-refund-approved", func() error {
		return uc.auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			CompanyID:  s.CompanyID,
			BranchID:   s.BranchID,
			UserID:     tc.UserID,
			Action:     entity.ActionRefundApproved,
			Details:    fmt.Sprintf("Reembolso aprobado para la venta %s", s.ID),
			EntityType: "Sale",
			EntityID:   s.ID,
			IPAddress:  ip,
			CreatedAt:  time.Now(),
		})
	})

	return toSaleResponse(s), nil
}

// PendingRefunds lista las ventas con reembolso en estado requested.
func (uc *UseCase) PendingRefunds(ctx context.Context, tc authz.TenantContext) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListByRefundStatus(tc.CompanyID, entity.RefundRequested)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

// shortID últimos 6 caracteres del ID para mensajes legibles.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
