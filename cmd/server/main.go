package main

import (
	"log"
	"strings"

	"stockdesk-backend/internal/access"
	"stockdesk-backend/internal/auth"
	"stockdesk-backend/internal/catalog"
	"stockdesk-backend/internal/config"
	"stockdesk-backend/internal/customers"
	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/dispatch"
	"stockdesk-backend/internal/events"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/purchasing"
	"stockdesk-backend/internal/reports"
	"stockdesk-backend/internal/sales"
	"stockdesk-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/users/register", auth.RegisterHandler(cfg))
	api.Post("/users/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/users/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// User administration
	adminRoutes.Get("/users", auth.ListUsersHandler())
	adminRoutes.Put("/users/:id", auth.UpdateUserHandler())
	adminRoutes.Post("/users/:id/permissions", access.GrantPermissionHandler())
	adminRoutes.Delete("/users/:id/permissions/:route", access.RevokePermissionHandler())
	adminRoutes.Get("/permissions", access.ListPermissionsHandler())

	// Catalog management
	adminRoutes.Post("/skus", catalog.CreateSKUHandler())
	adminRoutes.Put("/skus/:id", catalog.UpdateSKUHandler())
	adminRoutes.Delete("/skus/:id", catalog.DeactivateSKUHandler())
	adminRoutes.Post("/warehouses", catalog.CreateWarehouseHandler())
	adminRoutes.Put("/warehouses/:id", catalog.UpdateWarehouseHandler())
	adminRoutes.Post("/suppliers", catalog.CreateSupplierHandler())
	adminRoutes.Put("/suppliers/:id", catalog.UpdateSupplierHandler())

	// Shared (authenticated) routes

	protected.Get("/permissions/check/:route", access.CheckPermissionHandler())

	// Catalog reads and stock corrections
	protected.Get("/skus", catalog.ListSKUsHandler())
	protected.Get("/skus/:id", catalog.GetSKUHandler())
	protected.Post("/skus/:id/adjust-stock", access.RequirePermission("skus.adjust-stock"), catalog.AdjustStockHandler())
	protected.Get("/warehouses", catalog.ListWarehousesHandler())
	protected.Get("/suppliers", catalog.ListSuppliersHandler())

	// Customers
	protected.Post("/customers", customers.CreateCustomerHandler())
	protected.Get("/customers", customers.ListCustomersHandler())
	protected.Get("/customers/:id", customers.GetCustomerHandler())
	protected.Put("/customers/:id", customers.UpdateCustomerHandler())
	protected.Delete("/customers/:id", customers.DeleteCustomerHandler())

	// Purchase indents
	protected.Post("/purchase-indents", purchasing.CreateIndentHandler())
	protected.Get("/purchase-indents", purchasing.ListIndentsHandler())
	protected.Get("/purchase-indents/:id", purchasing.GetIndentHandler())
	protected.Put("/purchase-indents/approval/:id/approve", access.RequirePermission("purchase-indents.approve"), purchasing.ApproveIndentHandler())
	protected.Put("/purchase-indents/approval/:id/reject", access.RequirePermission("purchase-indents.approve"), purchasing.RejectIndentHandler())
	protected.Delete("/purchase-indents/:id", access.RequirePermission("purchase-indents.delete"), purchasing.DeleteIndentHandler())

	// Purchase orders
	protected.Post("/purchase-orders", purchasing.CreatePOHandler())
	protected.Get("/purchase-orders", purchasing.ListPOsHandler())
	protected.Get("/purchase-orders/:id", purchasing.GetPOHandler())
	protected.Put("/purchase-orders/:id", purchasing.UpdatePOHandler())
	protected.Delete("/purchase-orders/:id", access.RequirePermission("purchase-orders.delete"), purchasing.DeletePOHandler())

	// Sales orders
	protected.Post("/sales-orders", sales.CreateOrderHandler())
	protected.Get("/sales-orders", sales.ListOrdersHandler())
	protected.Get("/sales-orders/:id", sales.GetOrderHandler())
	protected.Put("/sales-orders/:id", sales.UpdateOrderHandler())
	protected.Put("/sales-orders/:id/status", sales.ChangeStatusHandler())
	protected.Delete("/sales-orders/:id", access.RequirePermission("sales-orders.delete"), sales.DeleteOrderHandler())

	// Dispatch
	protected.Put("/sales-orders/:id/dispatch", access.RequirePermission("sales-orders.dispatch"), dispatch.DispatchOrderHandler())
	protected.Get("/sales-orders/:id/dispatch-logs", dispatch.ListDispatchLogsHandler())

	// Event trail
	protected.Get("/events", events.ListEventsHandler())

	// Uploads and reporting
	protected.Post("/uploads", uploads.UploadImageHandler(cfg))
	protected.Get("/dashboard/summary", reports.DashboardSummaryHandler())
	protected.Get("/reports/stock-export", reports.ExportStockReportHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
