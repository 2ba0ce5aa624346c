package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecovia/carbon-market-api/internal/application/approval"
	"github.com/ecovia/carbon-market-api/internal/application/auth"
	"github.com/ecovia/carbon-market-api/internal/application/commute"
	"github.com/ecovia/carbon-market-api/internal/application/marketplace"
	"github.com/ecovia/carbon-market-api/internal/application/report"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ApprovalUC    *approval.UseCase
	CommuteUC     *commute.UseCase
	MarketplaceUC *marketplace.UseCase
	ReportUC      *report.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	orgHandler := NewOrganizationHandler(deps.ApprovalUC, deps.ReportUC)
	userHandler := NewUserHandler(deps.ApprovalUC)
	commuteHandler := NewCommuteHandler(deps.CommuteUC)
	marketHandler := NewMarketplaceHandler(deps.MarketplaceUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Registro de organización (público: acompaña al registro del org_admin)
	api.Post("/organizations", orgHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios
	users := protected.Group("/users")
	users.Patch("/me/commute-distance", authHandler.SetCommuteDistance)
	users.Patch("/:id/approve", RequireRole(entity.RoleOrgAdmin), userHandler.Approve)

	// Trayectos (solo empleados)
	logs := protected.Group("/commute-logs", RequireRole(entity.RoleEmployee))
	logs.Post("/", commuteHandler.Log)
	logs.Get("/", commuteHandler.List)

	// Organizaciones
	orgs := protected.Group("/organizations")
	orgs.Get("/", RequireRole(entity.RoleSystemAdmin), orgHandler.List)
	orgs.Get("/:id", orgHandler.GetByID)
	orgs.Get("/:id/certificate", orgHandler.Certificate)
	orgs.Patch("/:id/approve", RequireRole(entity.RoleSystemAdmin), orgHandler.Approve)
	orgs.Patch("/:id/reject", RequireRole(entity.RoleSystemAdmin), orgHandler.Reject)

	// Mercado de créditos (org_admin publica y compra; todos pueden mirar)
	listings := protected.Group("/listings")
	listings.Get("/", marketHandler.ListActive)
	listings.Post("/", RequireRole(entity.RoleOrgAdmin), marketHandler.CreateListing)
	protected.Post("/purchases/:listingId", RequireRole(entity.RoleOrgAdmin), marketHandler.Purchase)
}
