package router

import (
	"go-inventory-ledger/internal/handler"
	"go-inventory-ledger/internal/middleware"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Auth       service.AuthService
	Users      service.UserService
	Products   service.ProductService
	Suppliers  service.SupplierService
	Ledger     service.LedgerService
	Dashboard  service.DashboardService
	Roles      repository.RoleRepository
	Privileges repository.PrivilegeRepository
	Hub        *ws.Hub
}

// Setup registers the public auth routes, the protected /api/v1 routes and /ws.
func Setup(app *fiber.App, d Deps) {
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	roleHandler := handler.NewRoleHandler(d.Roles, d.Privileges)
	productHandler := handler.NewProductHandler(d.Products, d.Ledger)
	supplierHandler := handler.NewSupplierHandler(d.Suppliers)
	purchaseHandler := handler.NewPurchaseHandler(d.Ledger)
	saleHandler := handler.NewSaleHandler(d.Ledger)
	dashHandler := handler.NewDashboardHandler(d.Dashboard)

	requireAuth := middleware.RequireAuth(d.Auth)
	can := middleware.RequirePrivilege

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", requireAuth, authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Get("/dashboard/stats", can("dashboard:view"), dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", can("dashboard:view"), dashHandler.GetStockMovement)
	protected.Get("/dashboard/financial", can("dashboard:view"), dashHandler.GetFinancialSummary)

	protected.Get("/products", can("product:view"), productHandler.GetProducts)
	protected.Get("/products/:id", can("product:view"), productHandler.GetProduct)
	protected.Get("/products/:id/history", can("product:view"), productHandler.GetProductHistory)
	protected.Post("/products", can("product:create"), productHandler.CreateProduct)
	protected.Put("/products/:id", can("product:update"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", can("product:delete"), productHandler.DeleteProduct)

	protected.Get("/suppliers", can("supplier:view"), supplierHandler.GetSuppliers)
	protected.Get("/suppliers/:id", can("supplier:view"), supplierHandler.GetSupplier)
	protected.Post("/suppliers", can("supplier:create"), supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", can("supplier:update"), supplierHandler.UpdateSupplier)
	protected.Patch("/suppliers/:id/status", can("supplier:update"), supplierHandler.SetSupplierStatus)
	protected.Delete("/suppliers/:id", can("supplier:delete"), supplierHandler.DeleteSupplier)

	protected.Get("/purchases", can("purchase:view"), purchaseHandler.GetPurchases)
	protected.Get("/purchases/:id", can("purchase:view"), purchaseHandler.GetPurchase)
	protected.Get("/purchases/:id/invoice", can("purchase:view"), purchaseHandler.GetPurchaseInvoice)
	protected.Post("/purchases", can("purchase:create"), purchaseHandler.CreatePurchase)
	protected.Put("/purchases/:id", can("purchase:update"), purchaseHandler.UpdatePurchase)
	protected.Delete("/purchases/:id", can("purchase:delete"), purchaseHandler.DeletePurchase)

	protected.Get("/sales", can("sale:view"), saleHandler.GetSales)
	protected.Get("/sales/:id", can("sale:view"), saleHandler.GetSale)
	protected.Post("/sales", can("sale:create"), saleHandler.CreateSale)
	protected.Put("/sales/:id", can("sale:update"), saleHandler.UpdateSale)
	protected.Delete("/sales/:id", can("sale:delete"), saleHandler.DeleteSale)

	protected.Get("/users", can("user:view"), userHandler.GetUsers)
	protected.Get("/users/:id", can("user:view"), userHandler.GetUser)
	protected.Post("/users", can("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", can("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", can("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", can("user:update_privilege"), userHandler.UpdateUserPrivileges)

	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		d.Hub.Register <- c
		defer func() { d.Hub.Unregister <- c }()

		for {
			// keep alive until the client goes away
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
