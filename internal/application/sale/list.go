package sale

import (
	"context"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/authz"
)

// MySales lista paginada de las ventas del usuario autenticado.
func (uc *UseCase) MySales(ctx context.Context, tc authz.TenantContext, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()

	total, err := uc.saleRepo.CountBySalesRep(tc.CompanyID, tc.UserID)
	if err != nil {
		return nil, err
	}
	sales, err := uc.saleRepo.ListBySalesRep(tc.CompanyID, tc.UserID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	return &dto.SaleListResponse{
		Sales: toSaleResponses(sales),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
