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

// CompanyUseCase gestión simple de empresas y sucursales.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	branchRepo  repository.BranchRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, branchRepo repository.BranchRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, branchRepo: branchRepo}
}

// Create da de alta una empresa (solo super_admin, validado en la ruta).
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	plan := in.Plan
	if plan == "" {
		plan = "basic"
	}
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Email:          in.Email,
		Address:        in.Address,
		Phone:          in.Phone,
		IsActive:       true,
		Plan:           plan,
		CurrencySymbol: "$",
		ReceiptHeader:  in.ReceiptHeader,
		ReceiptFooter:  in.ReceiptFooter,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Me devuelve la empresa del usuario autenticado.
func (uc *CompanyUseCase) Me(tc authz.TenantContext) (*dto.CompanyResponse, error) {
	if tc.CompanyID == "" {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// CreateBranch da de alta una sucursal en la empresa del admin.
func (uc *CompanyUseCase) CreateBranch(tc authz.TenantContext, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: tc.CompanyID,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// ListBranches lista las sucursales de la empresa.
func (uc *CompanyUseCase) ListBranches(tc authz.TenantContext) ([]dto.BranchResponse, error) {
	branches, err := uc.branchRepo.ListByCompany(tc.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, *toBranchResponse(b))
	}
	return out, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Address:       c.Address,
		Phone:         c.Phone,
		Plan:          c.Plan,
		IsActive:      c.IsActive,
		ReceiptHeader: c.ReceiptHeader,
		ReceiptFooter: c.ReceiptFooter,
		CreatedAt:     c.CreatedAt,
	}
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}
