package usecase

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
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ReceivingTxRunner ejecuta la recepción de una orden de compra dentro de una
// transacción: cambio de estado + incrementos de stock, todo o nada.
type ReceivingTxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// PurchaseUseCase órdenes de compra y recepción de mercancía (entrada de
// stock al ledger).
type PurchaseUseCase struct {
	txRunner  ReceivingTxRunner
	poRepo    repository.PurchaseOrderRepository
	auditRepo repository.AuditLogRepository
	log       *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner ReceivingTxRunner, poRepo repository.PurchaseOrderRepository, auditRepo repository.AuditLogRepository, log *logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, poRepo: poRepo, auditRepo: auditRepo, log: log}
}

// Create registra una orden de compra en estado pending.
func (uc *PurchaseUseCase) Create(tc authz.TenantContext, in dto.CreatePORequest) (*dto.PurchaseOrderResponse, error) {
	if in.Supplier == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		CompanyID: tc.CompanyID,
		BranchID:  tc.BranchID,
		Supplier:  in.Supplier,
		Notes:     in.Notes,
		Status:    entity.POStatusPending,
		CreatedBy: tc.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	total := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		po.Items = append(po.Items, entity.POItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			UnitCost:        item.UnitCost,
		})
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(item.Quantity)))
	}
	po.TotalCost = total

	if err := uc.poRepo.Create(po); err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// List lista las órdenes de compra de la empresa.
func (uc *PurchaseUseCase) List(tc authz.TenantContext, page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	pos, err := uc.poRepo.ListByCompany(tc.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		out = append(out, *toPOResponse(po))
	}
	return out, nil
}

// Receive pasa la orden a received e incrementa el stock de cada producto en
// una sola transacción. Recibir dos veces es una transición inválida.
func (uc *PurchaseUseCase) Receive(ctx context.Context, tc authz.TenantContext, poID, ip string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.CompanyID != tc.CompanyID && !tc.IsSuperAdmin() {
		return nil, domain.ErrNotFound
	}
	if !po.CanReceive() {
		return nil, domain.ErrInvalidStateTransition
	}

	now := time.Now()
	err = uc.txRunner.RunReceiving(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, item := range po.Items {
			if _, err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		po.Status = entity.POStatusReceived
		po.ReceivedAt = &now
		po.UpdatedAt = now
		return poRepo.UpdateStatus(po)
	})
	if err != nil {
		return nil, err
	}

	effects.Fire(uc.log, "audit-po-received", func() error {
		return uc.auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			CompanyID:  po.CompanyID,
			BranchID:   po.BranchID,
			UserID:     tc.UserID,
			Action:     entity.ActionPOReceived,
			Details:    fmt.Sprintf("Orden de compra recibida de %s. Stock actualizado en %d productos.", po.Supplier, len(po.Items)),
			EntityType: "PurchaseOrder",
			EntityID:   po.ID,
			IPAddress:  ip,
			CreatedAt:  time.Now(),
		})
	})

	return toPOResponse(po), nil
}

func toPOResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:         po.ID,
		CompanyID:  po.CompanyID,
		BranchID:   po.BranchID,
		Supplier:   po.Supplier,
		Items:      make([]dto.POItemResponse, 0, len(po.Items)),
		TotalCost:  po.TotalCost,
		Notes:      po.Notes,
		Status:     po.Status,
		ReceivedAt: po.ReceivedAt,
		CreatedAt:  po.CreatedAt,
	}
	for _, it := range po.Items {
		resp.Items = append(resp.Items, dto.POItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	return resp
}
