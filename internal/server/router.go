package server

import (
	"strings"

	"ledger-backend/internal/auth"
	"ledger-backend/internal/config"
	"ledger-backend/internal/dashboard"
	"ledger-backend/internal/httpx"
	"ledger-backend/internal/inventory"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"
	"ledger-backend/internal/orders"
	"ledger-backend/internal/party"
	"ledger-backend/internal/payments"
	"ledger-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New builds the fiber app with every route under /api.
func New(cfg *config.Config, svc *ledger.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: httpx.ErrorHandler,
		AppName:      "ledger-backend",
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}

	app.Use(recover.New())
	app.Use(httpx.RequestIDMiddleware())
	app.Use(httpx.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	adminOnly := auth.RequireRole(models.RoleAdmin)

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/users", adminOnly, auth.CreateUserHandler())

	// Currencies
	protected.Get("/currencies", inventory.ListCurrenciesHandler(svc))
	protected.Get("/currencies/:id", inventory.GetCurrencyHandler(svc))
	protected.Post("/currencies", adminOnly, inventory.CreateCurrencyHandler(svc))
	protected.Put("/currencies/:id", adminOnly, inventory.UpdateCurrencyHandler(svc))
	protected.Delete("/currencies/:id", adminOnly, inventory.DeleteCurrencyHandler(svc))

	// Products
	protected.Get("/products", inventory.ListProductsHandler(svc))
	protected.Get("/products/:id", inventory.GetProductHandler(svc))
	protected.Post("/products", adminOnly, inventory.CreateProductHandler(svc))
	protected.Put("/products/:id", adminOnly, inventory.UpdateProductHandler(svc))
	protected.Delete("/products/:id", adminOnly, inventory.DeleteProductHandler(svc))

	// Suppliers / customers
	for path, kind := range map[string]models.PartyKind{
		"/suppliers": models.PartySupplier,
		"/customers": models.PartyCustomer,
	} {
		g := protected.Group(path)
		g.Get("", party.ListHandler(svc, kind))
		g.Post("", party.CreateHandler(svc, kind))
		g.Get("/:id", party.GetHandler(svc, kind))
		g.Put("/:id", party.UpdateHandler(svc, kind))
		g.Delete("/:id", adminOnly, party.DeleteHandler(svc, kind))
		g.Get("/:id/debt", party.DebtHandler(svc, kind))
	}

	// Purchases / sales
	for path, kind := range map[string]models.OrderKind{
		"/purchases": models.OrderPurchase,
		"/sales":     models.OrderSale,
	} {
		g := protected.Group(path)
		g.Post("", orders.CreateHandler(svc, kind))
		g.Get("", orders.ListHandler(svc, kind))
		g.Get("/:id", orders.GetHandler(svc, kind))
		g.Put("/:id", orders.UpdateHandler(svc, kind))
		g.Put("/:id/items", orders.ReplaceItemsHandler(svc, kind))
		g.Delete("/:id", adminOnly, orders.DeleteHandler(svc, kind))
		g.Get("/:id/debt", orders.DebtHandler(svc, kind))
	}

	// Payments
	for path, kind := range map[string]models.PartyKind{
		"/supplier-payments": models.PartySupplier,
		"/customer-payments": models.PartyCustomer,
	} {
		g := protected.Group(path)
		g.Post("", payments.CreateHandler(svc, kind))
		g.Get("", payments.ListHandler(svc, kind))
		g.Put("/:id", payments.UpdateHandler(svc, kind))
		g.Delete("/:id", adminOnly, payments.DeleteHandler(svc, kind))
	}

	protected.Get("/dashboard", dashboard.Handler(svc))
	protected.Get("/reports/debts.xlsx", report.DebtsHandler(svc))

	return app
}
