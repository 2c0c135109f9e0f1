package main

import (
	"log"
	"strings"

	"github.com/shibilicv/stock-management-backend/internal/admin"
	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/auth"
	"github.com/shibilicv/stock-management-backend/internal/config"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/inventory"
	"github.com/shibilicv/stock-management-backend/internal/models"
	"github.com/shibilicv/stock-management-backend/internal/requests"
	"github.com/shibilicv/stock-management-backend/internal/stock"
	"github.com/shibilicv/stock-management-backend/internal/suppliers"

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
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
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
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Şube yönetimi
	adminRoutes.Post("/branches", admin.CreateBranchHandler())
	adminRoutes.Put("/branches/:id", admin.UpdateBranchHandler())
	adminRoutes.Delete("/branches/:id", admin.DeleteBranchHandler())
	adminRoutes.Post("/branches/:id/manager", admin.CreateBranchManagerHandler())

	// Ürün yönetimi
	adminRoutes.Post("/products", inventory.CreateProductHandler())
	adminRoutes.Put("/products/:id", inventory.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", inventory.DeleteProductHandler())
	adminRoutes.Post("/products/bulk-import", inventory.BulkImportProductsHandler())

	// Kategori ve marka yönetimi
	adminRoutes.Post("/categories", inventory.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", inventory.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", inventory.DeleteCategoryHandler())
	adminRoutes.Post("/brands", inventory.CreateBrandHandler())
	adminRoutes.Delete("/brands/:id", inventory.DeleteBrandHandler())

	// Tedarikçi yönetimi
	adminRoutes.Post("/suppliers", suppliers.CreateSupplierHandler())
	adminRoutes.Put("/suppliers/:id", suppliers.UpdateSupplierHandler())
	adminRoutes.Delete("/suppliers/:id", suppliers.DeleteSupplierHandler())

	// Stok hareketleri (sadece admin kayıt açar)
	adminRoutes.Post("/inflows", stock.CreateInflowHandler())
	adminRoutes.Post("/outflows", stock.CreateOutflowHandler())
	adminRoutes.Post("/damages", stock.CreateDamageHandler())

	// Talep durumu güncelleme
	adminRoutes.Put("/requests/:id/status", requests.UpdateRequestStatusHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Ortak (auth gerektiren) route'lar

	// Şubeler
	protected.Get("/branches", admin.ListBranchesHandler())
	protected.Get("/branches/:id", admin.GetBranchHandler())

	// Ürünler
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/:id", inventory.GetProductHandler())
	protected.Get("/categories", inventory.ListCategoriesHandler())
	protected.Get("/brands", inventory.ListBrandsHandler())

	// Tedarikçiler
	protected.Get("/suppliers", suppliers.ListSuppliersHandler())
	protected.Get("/suppliers/:id", suppliers.GetSupplierHandler())

	// Stok hareket geçmişi
	protected.Get("/inflows", stock.ListInflowsHandler())
	protected.Get("/outflows", stock.ListOutflowsHandler())
	protected.Get("/damages", stock.ListDamagesHandler())

	// Şube stokları
	protected.Get("/branch-products", inventory.ListBranchProductsHandler())
	protected.Put("/branch-products/:id", inventory.UpdateBranchProductHandler())

	// Ürün talepleri
	protected.Post("/requests", requests.CreateRequestHandler())
	protected.Get("/requests", requests.ListRequestsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
