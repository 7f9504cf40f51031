package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/multitenant-inventory/internal/application/auth"
	"github.com/jhoicas/multitenant-inventory/internal/application/report"
	"github.com/jhoicas/multitenant-inventory/internal/application/usecase"
	"github.com/jhoicas/multitenant-inventory/internal/domain/authz"
	"github.com/jhoicas/multitenant-inventory/internal/infrastructure/metrics"
	"github.com/jhoicas/multitenant-inventory/pkg/jwt"
	"github.com/jhoicas/multitenant-inventory/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *usecase.InventoryUseCase
	UserUC      *usecase.UserUseCase
	AuthUC      *auth.AuthUseCase
	ReportUC    *report.UseCase
	Issuer      *jwt.Issuer
	Policy      *authz.Policy
	Metrics     *metrics.Metrics
	Health      map[string]Pinger
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	policy := deps.Policy
	if policy == nil {
		policy = authz.DefaultPolicy()
	}
	guard := NewGuard(policy, log)

	app.Get("/health", NewHealthHandler(deps.Health, log).Check)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api", AuthMiddleware(deps.Issuer))

	// Tokens (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics, log)
	api.Post("/token", authHandler.Token)
	api.Post("/token/refresh", authHandler.Refresh)
	api.Post("/token/blacklist", authHandler.Blacklist)

	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	crud(api.Group("/companies"), guard, authz.ResourceCompany, crudHandlers{
		list: companyHandler.List, create: companyHandler.Create, retrieve: companyHandler.GetByID,
		update: companyHandler.Update, patch: companyHandler.Patch, delete: companyHandler.Delete,
	})

	productHandler := NewProductHandler(deps.ProductUC, log)
	crud(api.Group("/products"), guard, authz.ResourceProduct, crudHandlers{
		list: productHandler.List, create: productHandler.Create, retrieve: productHandler.GetByID,
		update: productHandler.Update, patch: productHandler.Patch, delete: productHandler.Delete,
	})

	// Las rutas del informe van antes de /:id.
	inventories := api.Group("/inventories")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReportUC, deps.Metrics, log)
	inventories.Get("/download-pdf", guard.Require(authz.ResourceInventory, authz.ActionReport), inventoryHandler.DownloadPDF)
	inventories.Get("/download_pdf", guard.Require(authz.ResourceInventory, authz.ActionReport), inventoryHandler.DownloadPDF)
	inventories.Post("/send_email", guard.Require(authz.ResourceInventory, authz.ActionReport), inventoryHandler.SendEmail)
	crud(inventories, guard, authz.ResourceInventory, crudHandlers{
		list: inventoryHandler.List, create: inventoryHandler.Create, retrieve: inventoryHandler.GetByID,
		update: inventoryHandler.Update, patch: inventoryHandler.Patch, delete: inventoryHandler.Delete,
	})

	userHandler := NewUserHandler(deps.UserUC, guard, log)
	crud(api.Group("/users"), guard, authz.ResourceUser, crudHandlers{
		list: userHandler.List, create: userHandler.Create, retrieve: userHandler.GetByID,
		update: userHandler.Update, patch: userHandler.Patch, delete: userHandler.Delete,
	})
}

type crudHandlers struct {
	list, create, retrieve, update, patch, delete fiber.Handler
}

// crud registra las seis operaciones de un recurso, cada una tras su regla de la política.
func crud(r fiber.Router, guard *Guard, resource authz.Resource, h crudHandlers) {
	r.Get("/", guard.Require(resource, authz.ActionList), h.list)
	r.Post("/", guard.Require(resource, authz.ActionCreate), h.create)
	r.Get("/:id", guard.Require(resource, authz.ActionRetrieve), h.retrieve)
	r.Put("/:id", guard.Require(resource, authz.ActionUpdate), h.update)
	r.Patch("/:id", guard.Require(resource, authz.ActionPartialUpdate), h.patch)
	r.Delete("/:id", guard.Require(resource, authz.ActionDelete), h.delete)
}
