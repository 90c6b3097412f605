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

// PendingOrders lista las ventas del día aún sin preparar, para la cola del
// picker. El día se evalúa en hora local del servidor.
func (uc *UseCase) PendingOrders(ctx context.Context, tc authz.TenantContext) ([]dto.SaleResponse, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	sales, err := uc.saleRepo.ListUnpreparedBetween(tc.CompanyID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

// MarkPrepared confirma la preparación física de una venta: solo válido desde
// el estado sin preparar. Reinvocarlo falla determinísticamente con
// transición inválida (nunca un segundo éxito silencioso).
func (uc *UseCase) MarkPrepared(ctx context.Context, tc authz.TenantContext, saleID, ip string) (*dto.SaleResponse, error) {
	s, err := uc.findOwnSale(tc, saleID)
	if err != nil {
		return nil, err
	}
	if s.IsPrepared {
		return nil, domain.ErrInvalidStateTransition
	}

	s.IsPrepared = true
	s.Status = entity.SaleStatusCompleted
	s.PreparedBy = tc.UserID
	s.UpdatedAt = time.Now()
	if err := uc.saleRepo.UpdatePreparation(s); err != nil {
		return nil, err
	}

	effects.Fire(uc.log, "audit-order-prepared", func() error {
		return uc.auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			CompanyID:  s.CompanyID,
			BranchID:   s.BranchID,
			UserID:     tc.UserID,
			Action:     entity.ActionOrderPrepared,
			Details:    fmt.Sprintf("Orden %s marcada como preparada", s.ID),
			EntityType: "Sale",
			EntityID:   s.ID,
			IPAddress:  ip,
			CreatedAt:  time.Now(),
		})
	})

	return toSaleResponse(s), nil
}
