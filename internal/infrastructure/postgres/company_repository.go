package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
	_ repository.BranchRepository  = (*BranchRepo)(nil)
)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, address, phone, email, is_active, plan, currency_symbol, receipt_header, receipt_footer, created_at, updated_at`

func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.Phone, company.Email,
		company.IsActive, company.Plan, company.CurrencySymbol,
		company.ReceiptHeader, company.ReceiptFooter,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	var c entity.Company
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.IsActive, &c.Plan,
		&c.CurrencySymbol, &c.ReceiptHeader, &c.ReceiptFooter,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, address = $3, phone = $4, email = $5, is_active = $6,
		    plan = $7, currency_symbol = $8, receipt_header = $9, receipt_footer = $10,
		    updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.Phone, company.Email,
		company.IsActive, company.Plan, company.CurrencySymbol,
		company.ReceiptHeader, company.ReceiptFooter, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, company_id, name, address, phone, is_active, created_at, updated_at`

func (r *BranchRepo) Create(branch *entity.Branch) error {
	query := `
		INSERT INTO branches (` + branchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		branch.ID, branch.CompanyID, branch.Name, branch.Address, branch.Phone,
		branch.IsActive, branch.CreatedAt, branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	var b entity.Branch
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.Phone, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

func (r *BranchRepo) ListByCompany(companyID string) ([]*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE company_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var branches []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.Phone,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		branches = append(branches, &b)
	}
	return branches, rows.Err()
}
