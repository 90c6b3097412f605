package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/authz"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ProductUseCase operaciones de catálogo. El stock NO se edita aquí: solo el
// alta fija el stock inicial; después el contador se mueve únicamente por
// ventas y recepciones de compra.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto con su stock inicial.
func (uc *ProductUseCase) Create(tc authz.TenantContext, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.UnitType == "" || in.ShelfLocation == "" || in.Price.IsNegative() || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     tc.CompanyID,
		BranchID:      in.BranchID,
		Name:          in.Name,
		Category:      in.Category,
		Size:          in.Size,
		UnitType:      in.UnitType,
		ShelfLocation: in.ShelfLocation,
		Barcode:       in.Barcode,
		Price:         in.Price,
		CurrentStock:  in.InitialStock,
		MinStockLevel: in.MinStockLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update edita datos de catálogo. CurrentStock queda intocable por diseño.
func (uc *ProductUseCase) Update(tc authz.TenantContext, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != tc.CompanyID && !tc.IsSuperAdmin() {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.ShelfLocation != nil {
		product.ShelfLocation = *in.ShelfLocation
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.MinStockLevel != nil {
		product.MinStockLevel = *in.MinStockLevel
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa, con filtro opcional por barcode.
func (uc *ProductUseCase) List(tc authz.TenantContext, barcode string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()

	if barcode != "" {
		product, err := uc.productRepo.GetByBarcode(tc.CompanyID, barcode)
		if err != nil {
			return nil, err
		}
		resp := &dto.ProductListResponse{Page: dto.PageResponse{Limit: page.Limit}}
		if product != nil {
			resp.Products = []dto.ProductResponse{*toProductResponse(product)}
			resp.Page.Total = 1
		}
		return resp, nil
	}

	total, err := uc.productRepo.CountByCompany(tc.CompanyID)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByCompany(tc.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, p := range products {
		resp.Products = append(resp.Products, *toProductResponse(p))
	}
	return resp, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		BranchID:      p.BranchID,
		Name:          p.Name,
		Category:      p.Category,
		Size:          p.Size,
		UnitType:      p.UnitType,
		ShelfLocation: p.ShelfLocation,
		Barcode:       p.Barcode,
		Price:         p.Price,
		CurrentStock:  p.CurrentStock,
		MinStockLevel: p.MinStockLevel,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}
