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
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// lowStockAlert producto que quedó en o bajo su umbral tras el decremento.
type lowStockAlert struct {
	productID   string
	productName string
	remaining   int64
}

// CreateSale registra una venta como una sola unidad atómica: valida todas
// las líneas, descuenta el stock de cada producto (decremento condicional,
// el único punto de serialización) e inserta la venta con sus snapshots de
// nombre y precio, todo dentro de una transacción. No existe venta
// persistida sin sus decrementos correspondientes.
//
// Las alertas de bajo stock y el registro de auditoría se emiten después del
// commit con semántica best-effort: su fallo jamás revierte la venta.
func (uc *UseCase) CreateSale(ctx context.Context, tc authz.TenantContext, in dto.CreateSaleRequest, ip string) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     tc.CompanyID,
		BranchID:      tc.BranchID,
		SalesRepID:    tc.UserID,
		IsCredit:      in.IsCredit,
		CreditSettled: !in.IsCredit, // ventas de contado nacen liquidadas
		Status:        entity.SaleStatusPending,
		IsPrepared:    false,
		RefundStatus:  entity.RefundNone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var alerts []lowStockAlert

	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		// Fase 1: validar TODAS las líneas antes de mutar nada. El precio se
		// relee siempre del producto autoritativo; el precio del cliente se
		// ignora (anti-manipulación).
		products := make([]*entity.Product, len(in.Items))
		subtotal := decimal.Zero
		for i, item := range in.Items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return domain.ErrNotFound
			}
			if product.CompanyID != tc.CompanyID {
				return domain.ErrForbidden
			}
			if item.Quantity > product.CurrentStock {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.CurrentStock,
					Requested:   item.Quantity,
				}
			}
			products[i] = product

			lineTotal := product.Price.Mul(decimal.NewFromInt(item.Quantity))
			subtotal = subtotal.Add(lineTotal)
			sale.Items = append(sale.Items, entity.LineItem{
				ID:           uuid.New().String(),
				SaleID:       sale.ID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				Quantity:     item.Quantity,
				UnitType:     product.UnitType,
				PricePerUnit: product.Price,
				Total:        lineTotal,
			})
		}

		sale.VATAmount = subtotal.Mul(uc.cfg.VATRate)
		sale.TotalAmount = subtotal.Add(sale.VATAmount)

		// Fase 2: decrementos. El UPDATE condicional vuelve a verificar el
		// piso; si una venta concurrente ganó la carrera, falla y la tx
		// completa se revierte.
		for i, item := range in.Items {
			remaining, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if remaining <= products[i].LowStockThreshold(uc.cfg.LowStockThreshold) {
				alerts = append(alerts, lowStockAlert{
					productID:   products[i].ID,
					productName: products[i].Name,
					remaining:   remaining,
				})
			}
		}

		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	for _, a := range alerts {
		effects.Fire(uc.log, "low-stock-notification", func() error {
			return uc.notificationRepo.Create(&entity.Notification{
				ID:        uuid.New().String(),
				CompanyID: tc.CompanyID,
				BranchID:  tc.BranchID,
				Roles:     []string{string(authz.RoleWarehouse), string(authz.RoleAdmin)},
				Title:     "Stock bajo",
				Message:   fmt.Sprintf("%s quedó en %d unidades", a.productName, a.remaining),
				Severity:  entity.SeverityWarning,
				Data:      map[string]string{"product_id": a.productID},
				CreatedAt: time.Now(),
			})
		})
	}
	effects.Fire(uc.log, "audit-sale-created", func() error {
		return uc.auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			CompanyID:  tc.CompanyID,
			BranchID:   tc.BranchID,
			UserID:     tc.UserID,
			Action:     entity.ActionSaleCreated,
			Details:    fmt.Sprintf("Venta registrada. Total: %s", sale.TotalAmount.StringFixed(2)),
			EntityType: "Sale",
			EntityID:   sale.ID,
			IPAddress:  ip,
			CreatedAt:  time.Now(),
		})
	})

	return toSaleResponse(sale), nil
}
