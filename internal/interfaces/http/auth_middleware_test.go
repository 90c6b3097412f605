package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain/authz"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "pos-api-test"
	testExpMin    = 60
)

// fakeUserRepo devuelve siempre el mismo usuario por ID.
type fakeUserRepo struct {
	user *entity.User
}

func (r *fakeUserRepo) Create(*entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		cp := *r.user
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) ListByCompany(string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Update(*entity.User) error { return nil }

type fakeCompanyRepo struct {
	company *entity.Company
}

func (r *fakeCompanyRepo) Create(*entity.Company) error { return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if r.company != nil && r.company.ID == id {
		cp := *r.company
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeCompanyRepo) Update(*entity.Company) error { return nil }

func activeUser(roles ...string) *entity.User {
	return &entity.User{
		ID:        testUserID,
		CompanyID: testCompanyID,
		Email:     "vendedor@test.com",
		Name:      "Vendedor Demo",
		Roles:     roles,
		IsActive:  true,
	}
}

func activeCompany() *entity.Company {
	return &entity.Company{ID: testCompanyID, Name: "Tienda Demo", IsActive: true}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar el TenantContext
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(user *entity.User, company *entity.Company, allowedRoles ...authz.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, &fakeUserRepo{user: user}, &fakeCompanyRepo{company: company}),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			tc := apphttp.GetTenant(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":          true,
				"user_id":     tc.UserID,
				"company_id":  tc.CompanyID,
				"active_role": string(tc.ActiveRole),
			})
		},
	)
	return app
}

// tokenWith genera un JWT con los roles otorgados y el rol activo indicados.
func tokenWith(t *testing.T, roles []string, activeRole string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", roles, activeRole, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el rol activo pertenece al conjunto requerido → HTTP 200.
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(activeUser("admin"), activeCompany(), authz.RoleAdmin)
	resp := doRequest(t, app, tokenWith(t, []string{"admin"}, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["active_role"])
}

// Caso 1b: uno de varios roles permitidos → HTTP 200.
func TestRequireRole_WarehouseAccedeRutaWarehouseOAdmin(t *testing.T) {
	app := buildTestApp(activeUser("warehouse"), activeCompany(), authz.RoleWarehouse, authz.RoleAdmin)
	resp := doRequest(t, app, tokenWith(t, []string{"warehouse"}, "warehouse"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 2: rol activo distinto del requerido → HTTP 403 FORBIDDEN.
func TestRequireRole_SalesBloqueadoEnRutaAccountant(t *testing.T) {
	app := buildTestApp(activeUser("sales"), activeCompany(), authz.RoleAccountant, authz.RoleAdmin)
	resp := doRequest(t, app, tokenWith(t, []string{"sales"}, "sales"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 3: usuario multi-rol sin rol activo declarado → HTTP 403 NO_ACTIVE_ROLE.
func TestRequireRole_SinRolActivo_Retorna403ConCodigoPropio(t *testing.T) {
	app := buildTestApp(activeUser("sales", "accountant"), activeCompany(), authz.RoleSales)
	resp := doRequest(t, app, tokenWith(t, []string{"sales", "accountant"}, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NO_ACTIVE_ROLE",
		"el código debe distinguir falta de rol activo de un forbidden normal")
}

// Caso 4: super_admin pasa cualquier puerta, incluso sin rol activo.
func TestRequireRole_SuperAdminBypass(t *testing.T) {
	superUser := activeUser("super_admin")
	superUser.CompanyID = "" // los super admins no pertenecen a una empresa
	app := buildTestApp(superUser, nil, authz.RoleAccountant)

	resp := doRequest(t, app, tokenWith(t, []string{"super_admin"}, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"super_admin debe pasar cualquier puerta de rol")
}

// Caso 5: los roles vigentes son los de la DB, no los del token. Un token
// que declara un rol activo ya revocado se rechaza.
func TestRequireRole_RolRevocadoEnDB_Forbidden(t *testing.T) {
	app := buildTestApp(activeUser("sales"), activeCompany(), authz.RoleAdmin)
	resp := doRequest(t, app, tokenWith(t, []string{"admin"}, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — autenticación y cuentas suspendidas
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(activeUser("admin"), activeCompany(), authz.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(activeUser("admin"), activeCompany(), authz.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioDesactivado_Retorna401(t *testing.T) {
	suspended := activeUser("admin")
	suspended.IsActive = false
	app := buildTestApp(suspended, activeCompany(), authz.RoleAdmin)

	resp := doRequest(t, app, tokenWith(t, []string{"admin"}, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token válido pero cuenta desactivada debe ser 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ACCOUNT_SUSPENDED")
}

func TestAuthMiddleware_EmpresaDesactivada_Retorna401(t *testing.T) {
	company := activeCompany()
	company.IsActive = false
	app := buildTestApp(activeUser("admin"), company, authz.RoleAdmin)

	resp := doRequest(t, app, tokenWith(t, []string{"admin"}, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ACCOUNT_SUSPENDED")
}

func TestAuthMiddleware_ExtraeTenantContext(t *testing.T) {
	app := buildTestApp(activeUser("sales"), activeCompany(), authz.RoleSales)
	resp := doRequest(t, app, tokenWith(t, []string{"sales"}, "sales"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "sales", body["active_role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRoles(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "branch-1",
		[]string{"sales", "accountant"}, "accountant", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.Equal(t, "branch-1", claims.BranchID)
	assert.Equal(t, []string{"sales", "accountant"}, claims.Roles)
	assert.Equal(t, "accountant", claims.ActiveRole)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "",
		[]string{"admin"}, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "",
		[]string{"admin"}, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
