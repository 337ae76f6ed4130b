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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TallerMotos-api/internal/application/auth"
	"github.com/jhoicas/TallerMotos-api/internal/application/catalog"
	"github.com/jhoicas/TallerMotos-api/internal/application/inventory"
	"github.com/jhoicas/TallerMotos-api/internal/application/orders"
	"github.com/jhoicas/TallerMotos-api/internal/application/purchasing"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
	"github.com/jhoicas/TallerMotos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/TallerMotos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/TallerMotos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/TallerMotos-api/internal/interfaces/http"
	"github.com/jhoicas/TallerMotos-api/pkg/config"
	"github.com/jhoicas/TallerMotos-api/pkg/logger"
)

// storage agrupa los repositorios y runners transaccionales de un backend
// (postgres o memoria). Ambos implementan los mismos puertos del dominio.
type storage struct {
	parts          repository.PartRepository
	suppliers      repository.SupplierRepository
	customers      repository.CustomerRepository
	motorcycles    repository.MotorcycleRepository
	users          repository.UserRepository
	requisitions   repository.RequisitionRepository
	purchaseOrders repository.PurchaseOrderRepository
	goodsReceipts  repository.GoodsReceiptRepository
	jobOrders      repository.JobOrderRepository
	salesOrders    repository.SalesOrderRepository
	payments       repository.PaymentRepository

	inventoryTx  inventory.TxRunner
	purchasingTx purchasing.TxRunner
	ordersTx     orders.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var st storage
	switch cfg.App.Storage {
	case "memory":
		store := memory.NewStore()
		st = storage{
			parts:          store.Parts(),
			suppliers:      store.Suppliers(),
			customers:      store.Customers(),
			motorcycles:    store.Motorcycles(),
			users:          store.Users(),
			requisitions:   store.Requisitions(),
			purchaseOrders: store.PurchaseOrders(),
			goodsReceipts:  store.GoodsReceipts(),
			jobOrders:      store.JobOrders(),
			salesOrders:    store.SalesOrders(),
			payments:       store.Payments(),
		}
		txRunner := memory.NewTxRunner(store)
		st.inventoryTx, st.purchasingTx, st.ordersTx = txRunner, txRunner, txRunner
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		st = storage{
			parts:          postgres.NewPartRepository(pool),
			suppliers:      postgres.NewSupplierRepository(pool),
			customers:      postgres.NewCustomerRepository(pool),
			motorcycles:    postgres.NewMotorcycleRepository(pool),
			users:          postgres.NewUserRepository(pool),
			requisitions:   postgres.NewRequisitionRepository(pool),
			purchaseOrders: postgres.NewPurchaseOrderRepository(pool),
			goodsReceipts:  postgres.NewGoodsReceiptRepository(pool),
			jobOrders:      postgres.NewJobOrderRepository(pool),
			salesOrders:    postgres.NewSalesOrderRepository(pool),
			payments:       postgres.NewPaymentRepository(pool),
		}
		txRunner := postgres.NewTxRunner(pool)
		st.inventoryTx, st.purchasingTx, st.ordersTx = txRunner, txRunner, txRunner
	}

	defaultTaxRate := decimal.NewFromFloat(cfg.Shop.DefaultTaxRate)
	purchaseTaxRate := decimal.NewFromFloat(cfg.Shop.PurchaseTaxRate)

	stockUC := inventory.NewStockUseCase(st.inventoryTx, st.parts, log.Component("inventory"))
	partUC := catalog.NewPartUseCase(st.parts)
	supplierUC := catalog.NewSupplierUseCase(st.suppliers)
	customerUC := catalog.NewCustomerUseCase(st.customers, st.motorcycles)

	requisitionUC := purchasing.NewRequisitionUseCase(st.requisitions)
	purchaseOrderUC := purchasing.NewPurchaseOrderUseCase(st.purchasingTx, st.purchaseOrders, st.suppliers, st.goodsReceipts, purchaseTaxRate)
	goodsReceiptUC := purchasing.NewGoodsReceiptUseCase(st.purchasingTx, stockUC, st.goodsReceipts, st.purchaseOrders)

	jobOrderUC := orders.NewJobOrderUseCase(st.ordersTx, stockUC, st.jobOrders, st.payments, st.customers, st.parts, defaultTaxRate)
	salesOrderUC := orders.NewSalesOrderUseCase(st.ordersTx, stockUC, st.salesOrders, st.payments, st.customers, st.parts, defaultTaxRate)
	paymentUC := orders.NewPaymentUseCase(jobOrderUC, salesOrderUC)

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	receiptPDF := infrapdf.NewReceiptGenerator(cfg.App.Name, cfg.Shop.CurrencySymbol)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		PartUC:          partUC,
		SupplierUC:      supplierUC,
		CustomerUC:      customerUC,
		StockUC:         stockUC,
		RequisitionUC:   requisitionUC,
		PurchaseOrderUC: purchaseOrderUC,
		GoodsReceiptUC:  goodsReceiptUC,
		JobOrderUC:      jobOrderUC,
		SalesOrderUC:    salesOrderUC,
		PaymentUC:       paymentUC,
		ReceiptPDF:      receiptPDF,
		JWTSecret:       cfg.JWT.Secret,
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
