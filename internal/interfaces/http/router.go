package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/prisma-api/internal/application/analytics"
	"github.com/jhoicas/prisma-api/internal/application/auth"
	"github.com/jhoicas/prisma-api/internal/application/blog"
	"github.com/jhoicas/prisma-api/internal/application/portal"
	"github.com/jhoicas/prisma-api/internal/application/sales"
	"github.com/jhoicas/prisma-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *sales.CustomerUseCase
	SaleUC      *sales.SaleUseCase
	Provisioner *portal.CredentialProvisioner
	PortalUC    *portal.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	ArticleUC   *blog.ArticleUseCase
	Site        *SiteHandler
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Público
	api.Get("/site", deps.Site.Get)

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// El login va antes del grupo /portal: el middleware del grupo cubre todo el prefijo.
	portalHandler := NewPortalHandler(deps.PortalUC)
	api.Post("/portal/login", portalHandler.Login)

	blogHandler := NewBlogHandler(deps.ArticleUC)
	blogGroup := api.Group("/blog")
	blogGroup.Get("/", blogHandler.List)
	blogGroup.Get("/search", blogHandler.Search)
	blogGroup.Get("/tag/:tag", blogHandler.ByTag)
	blogGroup.Get("/:slug", blogHandler.Detail)

	// Portal del cliente (token role=customer)
	customerOnly := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleCustomer)}
	portalGroup := api.Group("/portal", customerOnly...)
	portalGroup.Get("/dashboard", portalHandler.Dashboard)
	portalGroup.Get("/sales", portalHandler.Sales)
	portalGroup.Post("/sales/:id/pay-second-deposit", portalHandler.PaySecondDeposit)
	portalGroup.Get("/sales/:id/document", portalHandler.Document)
	portalGroup.Put("/password", portalHandler.ChangePassword)
	portalGroup.Post("/support", portalHandler.Support)

	// Panel (token role=staff)
	staffOnly := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleStaff)}

	customers := api.Group("/customers", staffOnly...)
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Provisioner)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Post("/provision-logins", customerHandler.ProvisionMissing)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/login", customerHandler.ProvisionLogin)

	salesGroup := api.Group("/sales", staffOnly...)
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Post("/:id/advance", saleHandler.Advance)
	salesGroup.Post("/:id/document", saleHandler.AttachDocument)

	dashboard := api.Group("/dashboard", staffOnly...)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/monthly", dashboardHandler.GetMonthly)
	dashboard.Get("/report.pdf", dashboardHandler.GetReportPDF)

	articles := api.Group("/articles", staffOnly...)
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Post("/", articleHandler.Create)
	articles.Get("/", articleHandler.List)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", articleHandler.Update)
	articles.Post("/:id/publish", articleHandler.Publish)
	articles.Post("/:id/unpublish", articleHandler.Unpublish)
	articles.Put("/:id/seo", articleHandler.UpsertSEO)
}
