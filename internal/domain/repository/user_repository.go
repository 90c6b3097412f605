package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
}

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
}

// BranchRepository define el puerto de persistencia para Branch.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	ListByCompany(companyID string) ([]*entity.Branch, error)
}
