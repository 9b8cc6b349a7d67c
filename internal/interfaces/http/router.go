package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gfarias/comercial-api/internal/application/analytics"
	"github.com/gfarias/comercial-api/internal/application/auth"
	"github.com/gfarias/comercial-api/internal/application/billing"
	"github.com/gfarias/comercial-api/internal/application/importer"
	"github.com/gfarias/comercial-api/internal/application/shopify"
	"github.com/gfarias/comercial-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	PriceListUC    *usecase.PriceListExportUseCase
	ClientUC       *usecase.ClientUseCase
	SupplierUC     *usecase.SupplierUseCase
	CategoryUC     *usecase.CategoryUseCase
	SupplierInvUC  *usecase.SupplierInvoiceUseCase
	MarginConfigUC *usecase.MarginConfigUseCase
	CreateSaleUC   *billing.CreateSaleUseCase
	SaleUC         *billing.SaleUseCase
	SalePDFUC      *billing.SalePDFUseCase
	PriceImportUC  *importer.PriceImportUseCase
	DashboardUC    *analytics.DashboardUseCase
	ShopifySyncUC  *shopify.SyncUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.PriceListUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.Export)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.SaleUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/sales", clientHandler.ListSales)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.ProductUC, deps.SupplierInvUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
	suppliers.Get("/:id/products", supplierHandler.ListProducts)
	suppliers.Get("/:id/invoices", supplierHandler.ListInvoices)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Delete("/:id", categoryHandler.Delete)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSaleUC, deps.SaleUC, deps.SalePDFUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/pdf", saleHandler.GetPDF)
	sales.Post("/:id/retry-afip", saleHandler.RetryAFIP)

	// Supplier invoices (protegido)
	supplierInvoices := protected.Group("/supplier-invoices")
	supplierInvoiceHandler := NewSupplierInvoiceHandler(deps.SupplierInvUC)
	supplierInvoices.Post("/", supplierInvoiceHandler.Create)
	supplierInvoices.Get("/", supplierInvoiceHandler.List)
	supplierInvoices.Post("/:id/pay", supplierInvoiceHandler.MarkPaid)
	supplierInvoices.Delete("/:id", supplierInvoiceHandler.Delete)

	// Import de listas de precios (protegido; el commit es solo admin)
	priceImports := protected.Group("/price-imports")
	importHandler := NewImportHandler(deps.PriceImportUC)
	priceImports.Post("/preview", importHandler.Preview)
	priceImports.Post("/commit", AdminOnly(), importHandler.Commit)

	// Márgenes globales (solo admin)
	configGroup := protected.Group("/config", AdminOnly())
	marginHandler := NewMarginConfigHandler(deps.MarginConfigUC)
	configGroup.Get("/margins", marginHandler.Get)
	configGroup.Put("/margins", marginHandler.Update)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	// Shopify (protegido)
	shopifyGroup := protected.Group("/shopify")
	shopifyHandler := NewShopifyHandler(deps.ShopifySyncUC)
	shopifyGroup.Get("/collections", shopifyHandler.ListCollections)
	shopifyGroup.Post("/products/:id/push", shopifyHandler.PushProduct)
	shopifyGroup.Post("/categories/:id/push", shopifyHandler.PushCategory)
}
