package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/authz"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, registro y semilla.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, resuelve el rol activo de la sesión y genera
// el JWT con el contexto tenant completo. Cuenta o empresa desactivada
// retorna ErrAccountSuspended.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrAccountSuspended
	}
	if user.CompanyID != "" {
		company, err := uc.companyRepo.GetByID(user.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil || !company.IsActive {
			return nil, domain.ErrAccountSuspended
		}
	}

	activeRole, err := resolveActiveRole(user.Roles, in.ActiveRole)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.BranchID,
		user.Roles, activeRole, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// resolveActiveRole decide el rol activo de la sesión: el declarado (debe
// estar otorgado), o el único rol del usuario, o vacío para multi-rol sin
// elección (las rutas con puerta de rol responderán NoActiveRole).
func resolveActiveRole(granted []string, declared string) (string, error) {
	if declared != "" {
		if _, err := authz.ParseRole(declared); err != nil {
			return "", domain.ErrInvalidInput
		}
		for _, r := range granted {
			if r == declared {
				return declared, nil
			}
		}
		return "", domain.ErrForbidden
	}
	if len(granted) == 1 {
		return granted[0], nil
	}
	return "", nil
}

// RegisterUser crea un usuario dentro de la empresa indicada. Devuelve
// ErrEmailAlreadyExists si el email ya está tomado.
func (uc *AuthUseCase) RegisterUser(companyID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{string(authz.RoleSales)}
	}
	if _, err := authz.ParseRoles(roles); err != nil {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		BranchID:     in.BranchID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Roles:        roles,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Seed crea una empresa demo y un usuario por rol (solo entornos de
// desarrollo; el handler cierra la puerta en producción).
func (uc *AuthUseCase) Seed() (*dto.CompanyResponse, error) {
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           "Default POS Shop",
		Email:          "main@pos.local",
		IsActive:       true,
		Plan:           "premium",
		CurrencySymbol: "$",
		ReceiptFooter:  "Thank you for your business!",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}

	seeds := []struct {
		name  string
		email string
		roles []string
	}{
		{"Sales User", "sales@test.com", []string{string(authz.RoleSales)}},
		{"Picker User", "picker@test.com", []string{string(authz.RolePicker)}},
		{"Warehouse User", "ware@test.com", []string{string(authz.RoleWarehouse)}},
		{"Accountant User", "acc@test.com", []string{string(authz.RoleAccountant)}},
		{"Admin User", "admin@test.com", []string{string(authz.RoleAdmin)}},
	}
	for _, s := range seeds {
		if _, err := uc.RegisterUser(company.ID, dto.RegisterRequest{
			Email:    s.email,
			Password: "123456",
			Name:     s.name,
			Roles:    s.roles,
		}); err != nil {
			return nil, err
		}
	}
	// Super admin sin empresa
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	super := &entity.User{
		ID:           uuid.New().String(),
		Email:        "super@test.com",
		PasswordHash: string(hash),
		Name:         "Super Admin",
		Roles:        []string{string(authz.RoleSuperAdmin)},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(super); err != nil {
		return nil, err
	}

	return &dto.CompanyResponse{
		ID:        company.ID,
		Name:      company.Name,
		Email:     company.Email,
		Plan:      company.Plan,
		IsActive:  company.IsActive,
		CreatedAt: company.CreatedAt,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     u.Roles,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
