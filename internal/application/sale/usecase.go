package sale

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// UseCase agrupa las operaciones sobre ventas: registro transaccional,
// listados, máquina de preparación (picker), máquina de reembolso y
// liquidación de crédito.
type UseCase struct {
	txRunner         TxRunner
	saleRepo         repository.SaleRepository
	productRepo      repository.ProductRepository
	companyRepo      repository.CompanyRepository
	notificationRepo repository.NotificationRepository
	auditRepo        repository.AuditLogRepository
	receipts         ReceiptGenerator
	cfg              config.POSConfig
	log              *logger.Logger
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	notificationRepo repository.NotificationRepository,
	auditRepo repository.AuditLogRepository,
	receipts ReceiptGenerator,
	cfg config.POSConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:         txRunner,
		saleRepo:         saleRepo,
		productRepo:      productRepo,
		companyRepo:      companyRepo,
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
		receipts:         receipts,
		cfg:              cfg,
		log:              log,
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		BranchID:      s.BranchID,
		SalesRepID:    s.SalesRepID,
		Items:         make([]dto.LineItemResponse, 0, len(s.Items)),
		TotalAmount:   s.TotalAmount,
		VATAmount:     s.VATAmount,
		IsCredit:      s.IsCredit,
		CreditSettled: s.CreditSettled,
		Status:        s.Status,
		IsPrepared:    s.IsPrepared,
		PreparedBy:    s.PreparedBy,
		RefundStatus:  s.RefundStatus,
		RefundReason:  s.RefundReason,
		CreatedAt:     s.CreatedAt,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			UnitType:     it.UnitType,
			PricePerUnit: it.PricePerUnit,
			Total:        it.Total,
		})
	}
	return resp
}

func toSaleResponses(sales []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out
}
