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

// SettleCredit marca como liquidada una venta a crédito. Liquidar una venta
// de contado o una ya liquidada es una transición inválida.
func (uc *UseCase) SettleCredit(ctx context.Context, tc authz.TenantContext, saleID, ip string) (*dto.SaleResponse, error) {
	s, err := uc.findOwnSale(tc, saleID)
	if err != nil {
		return nil, err
	}
	if !s.CanSettleCredit() {
		return nil, domain.ErrInvalidStateTransition
	}

	s.CreditSettled = true
	s.UpdatedAt = time.Now()
	if err := uc.saleRepo.UpdateCreditSettled(s); err != nil {
		return nil, err
	}

	effects.Fire(uc.log, "audit-credit-settled", func() error {
		return uc.auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			CompanyID:  s.CompanyID,
			BranchID:   s.BranchID,
			UserID:     tc.UserID,
			Action:     entity.ActionCreditSettled,
			Details:    fmt.Sprintf("Crédito liquidado para la venta %s. Monto: %s", s.ID, s.TotalAmount.StringFixed(2)),
			EntityType: "Sale",
			EntityID:   s.ID,
			IPAddress:  ip,
			CreatedAt:  time.Now(),
		})
	})

	return toSaleResponse(s), nil
}

// PendingCredit lista las ventas a crédito aún sin liquidar.
func (uc *UseCase) PendingCredit(ctx context.Context, tc authz.TenantContext) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListPendingCredit(tc.CompanyID)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}
