package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/gfarias/comercial-api/internal/application/analytics"
	"github.com/gfarias/comercial-api/internal/application/auth"
	"github.com/gfarias/comercial-api/internal/application/billing"
	"github.com/gfarias/comercial-api/internal/application/importer"
	appshopify "github.com/gfarias/comercial-api/internal/application/shopify"
	"github.com/gfarias/comercial-api/internal/application/usecase"
	infraafip "github.com/gfarias/comercial-api/internal/infrastructure/afip"
	"github.com/gfarias/comercial-api/internal/infrastructure/excel"
	infrapdf "github.com/gfarias/comercial-api/internal/infrastructure/pdf"
	"github.com/gfarias/comercial-api/internal/infrastructure/postgres"
	infrashopify "github.com/gfarias/comercial-api/internal/infrastructure/shopify"
	httpRouter "github.com/gfarias/comercial-api/internal/interfaces/http"
	"github.com/gfarias/comercial-api/pkg/config"
	"github.com/gfarias/comercial-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	supplierInvRepo := postgres.NewSupplierInvoiceRepository(pool)
	marginRepo := postgres.NewMarginConfigRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	afipCfg := billing.AFIPConfig{
		CUIT:        cfg.AFIP.CUIT,
		PuntoVenta:  cfg.AFIP.PuntoVenta,
		Environment: cfg.AFIP.Environment,
		AppEnv:      cfg.AFIP.AppEnv,
		CertPath:    cfg.AFIP.CertPath,
		CertKeyPath: cfg.AFIP.CertKeyPath,
	}

	// Clientes SOAP AFIP — solo se usan si AppEnv es "homo" o "prod".
	// En modo "dev" el orquestador no los invoca y la venta queda pendiente.
	var (
		wsaaClient billing.TicketProvider
		wsfeClient billing.CAESubmitter
	)
	if cfg.AFIP.AppEnv != "dev" && cfg.AFIP.AppEnv != "" {
		cert, err := infraafip.LoadCertFromPEM(cfg.AFIP.CertPath, cfg.AFIP.CertKeyPath)
		if err != nil {
			log.Fatal().Err(err).Msg("certificado AFIP")
		}
		wsaaClient = infraafip.NewWSAAClient(cert, cfg.AFIP.Environment)
		wsfeClient = infraafip.NewWSFEClient(cfg.AFIP.CUIT, cfg.AFIP.Environment)
	}

	// AFIPOrchestrator: ciclo TA (WSAA) → FECAESolicitar (WSFEv1) → CAE → Update DB
	afipOrchestrator := billing.NewAFIPOrchestrator(saleRepo, wsaaClient, wsfeClient, afipCfg)

	createSaleUC := billing.NewCreateSaleUseCase(txRunner, clientRepo, afipOrchestrator, afipCfg)
	saleUC := billing.NewSaleUseCase(saleRepo, clientRepo, afipOrchestrator)

	// PDF: representación gráfica del comprobante con QR fiscal
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	salePDFUC := billing.NewSalePDFUseCase(saleRepo, clientRepo, pdfGenerator, afipCfg)

	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)
	priceListUC := usecase.NewPriceListExportUseCase(productRepo, excel.NewPriceListExporter())
	clientUC := usecase.NewClientUseCase(clientRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierInvUC := usecase.NewSupplierInvoiceUseCase(supplierInvRepo, supplierRepo)
	marginConfigUC := usecase.NewMarginConfigUseCase(marginRepo)
	priceImportUC := importer.NewPriceImportUseCase(productRepo, marginRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// Shopify: nil si no está configurado; el caso de uso responde 409.
	shopifyClient := infrashopify.NewRESTClient(cfg.Shopify)
	var shopifySyncUC *appshopify.SyncUseCase
	if shopifyClient != nil {
		shopifySyncUC = appshopify.NewSyncUseCase(productRepo, categoryRepo, shopifyClient)
	} else {
		shopifySyncUC = appshopify.NewSyncUseCase(productRepo, categoryRepo, nil)
		log.Warn().Msg("integración Shopify deshabilitada (falta SHOPIFY_SHOP_DOMAIN o SHOPIFY_ACCESS_TOKEN)")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20, // margen sobre el CSV de importación de 10 MB
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comercial API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		PriceListUC:    priceListUC,
		ClientUC:       clientUC,
		SupplierUC:     supplierUC,
		CategoryUC:     categoryUC,
		SupplierInvUC:  supplierInvUC,
		MarginConfigUC: marginConfigUC,
		CreateSaleUC:   createSaleUC,
		SaleUC:         saleUC,
		SalePDFUC:      salePDFUC,
		PriceImportUC:  priceImportUC,
		DashboardUC:    dashboardUC,
		ShopifySyncUC:  shopifySyncUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
