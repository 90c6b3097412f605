package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/sale"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/authz"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	SaleUC         *sale.UseCase
	ProductUC      *usecase.ProductUseCase
	PurchaseUC     *usecase.PurchaseUseCase
	NotificationUC *usecase.NotificationUseCase
	AuditUC        *usecase.AuditUseCase
	CompanyUC      *usecase.CompanyUseCase
	UserRepo       repository.UserRepository
	CompanyRepo    repository.CompanyRepository
	JWTSecret      string
	AllowSeed      bool
}

// Router registra las rutas de la API. Toda ruta protegida pasa por el
// middleware de auth; las puertas de rol van por grupo o por ruta según el
// recurso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.AllowSeed)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/seed", authHandler.Seed)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.UserRepo, deps.CompanyRepo))

	// Register exige admin; la puerta vive en el handler porque comparte
	// grupo con login.
	protected.Post("/auth/register", authHandler.Register)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", RequireRole(authz.RoleWarehouse, authz.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(authz.RoleWarehouse, authz.RoleAdmin), productHandler.Update)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", RequireRole(authz.RoleSales, authz.RoleAdmin), saleHandler.Create)
	sales.Get("/my-sales", saleHandler.MySales)
	sales.Get("/refunds/pending", RequireRole(authz.RoleAccountant, authz.RoleAdmin), saleHandler.PendingRefunds)
	sales.Get("/credit/pending", RequireRole(authz.RoleAccountant, authz.RoleAdmin), saleHandler.PendingCredit)
	sales.Post("/:id/refund", RequireRole(authz.RoleSales, authz.RoleAdmin), saleHandler.RequestRefund)
	sales.Put("/:id/refund/approve", RequireRole(authz.RoleAccountant, authz.RoleAdmin), saleHandler.ApproveRefund)
	sales.Put("/:id/settle", RequireRole(authz.RoleAccountant, authz.RoleAdmin), saleHandler.SettleCredit)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Picker
	picker := protected.Group("/picker", RequireRole(authz.RolePicker, authz.RoleAdmin))
	pickerHandler := NewPickerHandler(deps.SaleUC)
	picker.Get("/orders", pickerHandler.PendingOrders)
	picker.Put("/orders/:id/prepare", pickerHandler.MarkPrepared)

	// Purchase orders
	purchases := protected.Group("/purchase-orders", RequireRole(authz.RoleWarehouse, authz.RoleAdmin))
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.List)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Put("/:id/receive", purchaseHandler.Receive)

	// Notifications
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.ListMine)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Audit
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit", RequireRole(authz.RoleAdmin, authz.RoleSuperAdmin), auditHandler.List)

	// Companies y sucursales
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Post("/companies", RequireRole(authz.RoleSuperAdmin), companyHandler.Create)
	protected.Get("/companies/me", companyHandler.Me)
	protected.Post("/branches", RequireRole(authz.RoleAdmin), companyHandler.CreateBranch)
	protected.Get("/branches", RequireRole(authz.RoleAdmin), companyHandler.ListBranches)
}
