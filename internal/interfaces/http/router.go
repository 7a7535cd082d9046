package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	appanalytics "github.com/jhoicas/Farmacia-portal/internal/application/analytics"
	"github.com/jhoicas/Farmacia-portal/internal/application/auth"
	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/inventory"
	"github.com/jhoicas/Farmacia-portal/internal/application/pos"
	"github.com/jhoicas/Farmacia-portal/internal/application/usecase"
	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *usecase.ProductUseCase
	OrderUC         *usecase.OrderUseCase
	PurchaseUC      *usecase.PurchaseUseCase
	ReturnUC        *usecase.ReturnUseCase
	SupplierUC      *usecase.SupplierUseCase
	SetupUC         *usecase.SetupUseCase
	RequestedItemUC *usecase.RequestedItemUseCase
	UserUC          *usecase.UserUseCase
	InventoryUC     *inventory.UseCase
	POSUC           *pos.UseCase
	DashboardUC     *appanalytics.DashboardUseCase

	Cookie         CookieConfig
	LoginRateLimit int // intentos de login por minuto e IP; 0 desactiva el límite
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC, deps.Cookie.Name)
	can := RequirePermission

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	if deps.LoginRateLimit > 0 {
		authGroup.Post("/login", limiter.New(limiter.Config{
			Max:        deps.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Code: "TOO_MANY_REQUESTS", Message: "Demasiados intentos, espere un minuto",
				})
			},
		}), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Navegación: /api/route acepta visitantes sin sesión
	api.Get("/route", OptionalAuth(deps.AuthUC, deps.Cookie.Name), authHandler.Route)

	// Rutas protegidas (requieren sesión)
	protected := api.Group("/", requireAuth)
	protected.Get("/shell", authHandler.Shell)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", can(access.ResourceDashboard, access.ActionRead), dashboardHandler.GetSummary)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", can(access.ResourceProducts, access.ActionRead), productHandler.List)
	products.Get("/:id", can(access.ResourceProducts, access.ActionRead), productHandler.GetByID)
	products.Post("/", can(access.ResourceProducts, access.ActionWrite), productHandler.Create)
	products.Put("/:id", can(access.ResourceProducts, access.ActionWrite), productHandler.Update)
	products.Put("/:id/stock", can(access.ResourceProducts, access.ActionWrite), productHandler.UpdateStock)
	products.Delete("/:id", can(access.ResourceProducts, access.ActionDelete), productHandler.Delete)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", can(access.ResourceOrders, access.ActionRead), orderHandler.List)
	orders.Get("/:id", can(access.ResourceOrders, access.ActionRead), orderHandler.GetByID)
	orders.Post("/", can(access.ResourceOrders, access.ActionWrite), orderHandler.Create)
	orders.Put("/:id/approve", can(access.ResourceOrders, access.ActionApprove), orderHandler.Approve)
	orders.Put("/:id/reject", can(access.ResourceOrders, access.ActionApprove), orderHandler.Reject)
	orders.Delete("/:id", can(access.ResourceOrders, access.ActionDelete), orderHandler.Delete)

	// Purchases
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", can(access.ResourcePurchases, access.ActionRead), purchaseHandler.List)
	purchases.Post("/", can(access.ResourcePurchases, access.ActionWrite), purchaseHandler.Create)
	purchases.Put("/:id", can(access.ResourcePurchases, access.ActionWrite), purchaseHandler.Update)
	purchases.Delete("/:id", can(access.ResourcePurchases, access.ActionDelete), purchaseHandler.Delete)

	// Returns
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returns.Get("/", can(access.ResourceReturns, access.ActionRead), returnHandler.List)
	returns.Post("/", can(access.ResourceReturns, access.ActionWrite), returnHandler.Create)
	returns.Put("/:id/approve", can(access.ResourceReturns, access.ActionApprove), returnHandler.Approve)
	returns.Put("/:id/reject", can(access.ResourceReturns, access.ActionApprove), returnHandler.Reject)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", can(access.ResourceSuppliers, access.ActionRead), supplierHandler.List)
	suppliers.Post("/", can(access.ResourceSuppliers, access.ActionWrite), supplierHandler.Create)
	suppliers.Put("/:id", can(access.ResourceSuppliers, access.ActionWrite), supplierHandler.Update)
	suppliers.Delete("/:id", can(access.ResourceSuppliers, access.ActionDelete), supplierHandler.Delete)

	// Setup (categorías, laboratorios, tipos de unidad)
	setup := protected.Group("/setup/:kind")
	setupHandler := NewSetupHandler(deps.SetupUC)
	setup.Get("/", can(access.ResourceSetup, access.ActionRead), setupHandler.List)
	setup.Post("/", can(access.ResourceSetup, access.ActionWrite), setupHandler.Create)
	setup.Put("/:id", can(access.ResourceSetup, access.ActionWrite), setupHandler.Update)
	setup.Delete("/:id", can(access.ResourceSetup, access.ActionDelete), setupHandler.Delete)

	// Requested items
	requested := protected.Group("/requested-items")
	requestedHandler := NewRequestedItemHandler(deps.RequestedItemUC)
	requested.Get("/", can(access.ResourceRequestedItems, access.ActionRead), requestedHandler.List)
	requested.Post("/", can(access.ResourceRequestedItems, access.ActionWrite), requestedHandler.Create)
	requested.Put("/:id/status", can(access.ResourceRequestedItems, access.ActionApprove), requestedHandler.SetStatus)
	requested.Delete("/:id", can(access.ResourceRequestedItems, access.ActionDelete), requestedHandler.Delete)

	// Users (solo superadmin)
	users := protected.Group("/users", RequireRole(entity.RoleSuperAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Inventory
	inv := protected.Group("/inventory", can(access.ResourceInventory, access.ActionRead))
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/summary", inventoryHandler.Summary)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/ledger", inventoryHandler.Ledger)
	inv.Get("/export.csv", inventoryHandler.ExportCSV)

	// POS
	posGroup := protected.Group("/pos")
	posHandler := NewPOSHandler(deps.POSUC)
	posGroup.Get("/cart", can(access.ResourcePOS, access.ActionRead), posHandler.Cart)
	posGroup.Delete("/cart", can(access.ResourcePOS, access.ActionWrite), posHandler.Clear)
	posGroup.Post("/cart/items", can(access.ResourcePOS, access.ActionWrite), posHandler.AddItem)
	posGroup.Put("/cart/items/:productId", can(access.ResourcePOS, access.ActionWrite), posHandler.SetQuantity)
	posGroup.Delete("/cart/items/:productId", can(access.ResourcePOS, access.ActionWrite), posHandler.RemoveItem)
	posGroup.Put("/cart/details", can(access.ResourcePOS, access.ActionWrite), posHandler.SetDetails)
	posGroup.Post("/checkout", can(access.ResourcePOS, access.ActionWrite), posHandler.Checkout)
	posGroup.Get("/receipts/:id", can(access.ResourcePOS, access.ActionRead), posHandler.Receipt)
}
