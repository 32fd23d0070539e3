package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/buildlink/marketplace-api/internal/application/analytics"
	"github.com/buildlink/marketplace-api/internal/application/auth"
	"github.com/buildlink/marketplace-api/internal/application/catalog"
	"github.com/buildlink/marketplace-api/internal/application/orders"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	DashboardUC *analytics.DashboardUseCase
	CatalogUC   *catalog.CatalogUseCase
	OrdersUC    *orders.CreateOrderUseCase
	DocGen      *pdf.PODocumentGenerator
	TokenSecret string
	ExpMinutes  int
}

// Router registra las rutas de la aplicación: autenticación pública,
// superficies por identidad y API del contratista.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.TokenSecret, deps.ExpMinutes)
	homeHandler := NewHomeHandler()
	contractorHandler := NewContractorHandler(deps.DashboardUC, deps.CatalogUC, deps.OrdersUC, deps.DocGen)

	// Auth (público)
	app.Get(LoginPath, authHandler.LoginPage)
	app.Get("/logout", authHandler.Logout)

	api := app.Group("/api")
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.RegisterPartner)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Post("/contractor/login", authHandler.ContractorLogin)
	authGroup.Post("/contractor/register", authHandler.RegisterContractor)

	session := Session(deps.TokenSecret)
	resolve := ResolvePrincipal(deps.AuthUC)

	// Superficie de empleados internos
	app.Get("/", session, RequireKind(entity.KindEmployee), resolve, homeHandler.EmployeeHome)

	// Superficie del socio legado
	app.Get("/partner/home", session, RequireKind(entity.KindPartner), resolve, homeHandler.PartnerHome)

	// Superficie del contratista (marketplace)
	contractor := app.Group("/contractor", session, RequireKind(entity.KindContractor), resolve)
	contractor.Get("/dashboard", contractorHandler.Dashboard)
	contractor.Get("/suppliers", contractorHandler.Suppliers)
	contractor.Get("/suppliers/:id", contractorHandler.SupplierDetail)
	contractor.Post("/suppliers/:id/orders", contractorHandler.CreateOrder)
	contractor.Get("/projects", contractorHandler.Projects)
	contractor.Post("/projects", contractorHandler.CreateProject)
	contractor.Get("/projects/:id", contractorHandler.ProjectDetail)
	contractor.Get("/orders", contractorHandler.Orders)
	contractor.Get("/orders/:id/document", contractorHandler.OrderDocument)
}
