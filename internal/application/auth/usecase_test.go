package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

const testSecret = "auth-test-secret"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{byEmail: make(map[string]*entity.User)}
	for _, u := range users {
		cp := *u
		r.byEmail[strings.ToLower(u.Email)] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[strings.ToLower(u.Email)]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[strings.ToLower(u.Email)] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ListByCompany(string, int, int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(*entity.User) error                              { return nil }

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
	for _, c := range companies {
		cp := *c
		r.companies[c.ID] = &cp
	}
	return r
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error { return nil }

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newAuthUC(users *fakeUserRepo, companies *fakeCompanyRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, companies, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "pos-api-test",
	})
}

func seller(t *testing.T, roles ...string) *entity.User {
	return &entity.User{
		ID:           "user-1",
		CompanyID:    "company-1",
		Email:        "vendedor@test.com",
		PasswordHash: hashOf(t, "123456"),
		Name:         "Vendedor Demo",
		Roles:        roles,
		IsActive:     true,
	}
}

func demoCompany() *entity.Company {
	return &entity.Company{ID: "company-1", Name: "Tienda Demo", IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_UnSoloRol_RolActivoAutomatico(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(seller(t, "sales")), newFakeCompanyRepo(demoCompany()))

	resp, err := uc.Login(dto.LoginRequest{Email: "vendedor@test.com", Password: "123456"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "sales", claims.ActiveRole,
		"un usuario de un solo rol obtiene ese rol activo sin declararlo")
	assert.Equal(t, "company-1", claims.CompanyID)
}

func TestLogin_MultiRol_SinDeclarar_TokenSinRolActivo(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(seller(t, "sales", "accountant")), newFakeCompanyRepo(demoCompany()))

	resp, err := uc.Login(dto.LoginRequest{Email: "vendedor@test.com", Password: "123456"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.ActiveRole,
		"multi-rol sin elección viaja sin rol activo; las puertas responderán NO_ACTIVE_ROLE")
	assert.ElementsMatch(t, []string{"sales", "accountant"}, claims.Roles)
}

func TestLogin_MultiRol_DeclaraRolOtorgado(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(seller(t, "sales", "accountant")), newFakeCompanyRepo(demoCompany()))

	resp, err := uc.Login(dto.LoginRequest{
		Email: "vendedor@test.com", Password: "123456", ActiveRole: "accountant",
	})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "accountant", claims.ActiveRole)
}

func TestLogin_DeclaraRolNoOtorgado_Forbidden(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(seller(t, "sales")), newFakeCompanyRepo(demoCompany()))

	_, err := uc.Login(dto.LoginRequest{
		Email: "vendedor@test.com", Password: "123456", ActiveRole: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_PasswordIncorrecto_Unauthorized(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(seller(t, "sales")), newFakeCompanyRepo(demoCompany()))

	_, err := uc.Login(dto.LoginRequest{Email: "vendedor@test.com", Password: "malaclave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente_Unauthorized(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), newFakeCompanyRepo())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@test.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioDesactivado_AccountSuspended(t *testing.T) {
	u := seller(t, "sales")
	u.IsActive = false
	uc := newAuthUC(newFakeUserRepo(u), newFakeCompanyRepo(demoCompany()))

	_, err := uc.Login(dto.LoginRequest{Email: "vendedor@test.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrAccountSuspended)
}

func TestLogin_EmpresaDesactivada_AccountSuspended(t *testing.T) {
	c := demoCompany()
	c.IsActive = false
	uc := newAuthUC(newFakeUserRepo(seller(t, "sales")), newFakeCompanyRepo(c))

	_, err := uc.Login(dto.LoginRequest{Email: "vendedor@test.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrAccountSuspended)
}

func TestLogin_SuperAdminSinEmpresa(t *testing.T) {
	super := &entity.User{
		ID:           "user-root",
		Email:        "super@test.com",
		PasswordHash: hashOf(t, "123456"),
		Name:         "Super Admin",
		Roles:        []string{"super_admin"},
		IsActive:     true,
	}
	uc := newAuthUC(newFakeUserRepo(super), newFakeCompanyRepo())

	resp, err := uc.Login(dto.LoginRequest{Email: "super@test.com", Password: "123456"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.CompanyID)
	assert.Equal(t, "super_admin", claims.ActiveRole)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_RolPorDefectoSales(t *testing.T) {
	users := newFakeUserRepo()
	uc := newAuthUC(users, newFakeCompanyRepo(demoCompany()))

	resp, err := uc.RegisterUser("company-1", dto.RegisterRequest{
		Email: "nuevo@test.com", Password: "secreto", Name: "Nuevo",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sales"}, resp.Roles)
	assert.Equal(t, "company-1", resp.CompanyID)

	// El hash nunca viaja en la respuesta y el password no se guarda plano.
	stored, err := users.GetByEmail("nuevo@test.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto")))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(seller(t, "sales")), newFakeCompanyRepo(demoCompany()))

	_, err := uc.RegisterUser("company-1", dto.RegisterRequest{
		Email: "vendedor@test.com", Password: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolFueraDelEnum(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), newFakeCompanyRepo(demoCompany()))

	_, err := uc.RegisterUser("company-1", dto.RegisterRequest{
		Email: "nuevo@test.com", Password: "secreto", Roles: []string{"root"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Seed
// ──────────────────────────────────────────────────────────────────────────────

func TestSeed_CreaEmpresaYUnUsuarioPorRol(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	uc := newAuthUC(users, companies)

	company, err := uc.Seed()
	require.NoError(t, err)
	assert.NotEmpty(t, company.ID)

	for _, email := range []string{
		"sales@test.com", "picker@test.com", "ware@test.com",
		"acc@test.com", "admin@test.com", "super@test.com",
	} {
		u, err := users.GetByEmail(email)
		require.NoError(t, err)
		require.NotNil(t, u, email)
		assert.True(t, u.IsActive, email)
	}

	// El super admin no pertenece a la empresa demo.
	super, _ := users.GetByEmail("super@test.com")
	assert.Empty(t, super.CompanyID)
}
