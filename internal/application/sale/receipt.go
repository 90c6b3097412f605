package sale

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/authz"
)

// Receipt genera el recibo imprimible (PDF) de una venta del tenant.
func (uc *UseCase) Receipt(ctx context.Context, tc authz.TenantContext, saleID string) ([]byte, error) {
	s, err := uc.findOwnSale(tc, saleID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(s.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateReceipt(ctx, s, company)
}
