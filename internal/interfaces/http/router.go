package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TallerMotos-api/internal/application/auth"
	"github.com/jhoicas/TallerMotos-api/internal/application/catalog"
	"github.com/jhoicas/TallerMotos-api/internal/application/inventory"
	"github.com/jhoicas/TallerMotos-api/internal/application/orders"
	"github.com/jhoicas/TallerMotos-api/internal/application/purchasing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	PartUC          *catalog.PartUseCase
	SupplierUC      *catalog.SupplierUseCase
	CustomerUC      *catalog.CustomerUseCase
	StockUC         *inventory.StockUseCase
	RequisitionUC   *purchasing.RequisitionUseCase
	PurchaseOrderUC *purchasing.PurchaseOrderUseCase
	GoodsReceiptUC  *purchasing.GoodsReceiptUseCase
	JobOrderUC      *orders.JobOrderUseCase
	SalesOrderUC    *orders.SalesOrderUseCase
	PaymentUC       *orders.PaymentUseCase
	ReceiptPDF      orders.ReceiptPDFGenerator
	JWTSecret       string
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

	// Parts (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC, deps.StockUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Delete("/:id", partHandler.Delete)
	parts.Post("/:id/adjust-stock", partHandler.AdjustStock)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	// Customers + motos (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/:id/motorcycles", customerHandler.AddMotorcycle)
	customers.Get("/:id/motorcycles", customerHandler.ListMotorcycles)

	// Requisitions (protegido)
	requisitions := protected.Group("/requisitions")
	requisitionHandler := NewRequisitionHandler(deps.RequisitionUC)
	requisitions.Post("/", requisitionHandler.Create)
	requisitions.Get("/", requisitionHandler.List)
	requisitions.Get("/:id", requisitionHandler.GetByID)
	requisitions.Put("/:id", requisitionHandler.Update)
	requisitions.Post("/:id/status", requisitionHandler.TransitionStatus)
	requisitions.Delete("/:id", requisitionHandler.Delete)

	// Purchase orders (protegido)
	purchaseOrders := protected.Group("/purchase-orders")
	purchaseOrderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	purchaseOrders.Post("/", purchaseOrderHandler.Create)
	purchaseOrders.Get("/", purchaseOrderHandler.List)
	purchaseOrders.Get("/:id", purchaseOrderHandler.GetByID)
	purchaseOrders.Put("/:id", purchaseOrderHandler.Update)
	purchaseOrders.Delete("/:id", purchaseOrderHandler.Delete)

	// Goods receipts (protegido)
	goodsReceipts := protected.Group("/goods-receipts")
	goodsReceiptHandler := NewGoodsReceiptHandler(deps.GoodsReceiptUC)
	goodsReceipts.Post("/", goodsReceiptHandler.Create)
	goodsReceipts.Get("/", goodsReceiptHandler.List)
	goodsReceipts.Get("/:id", goodsReceiptHandler.GetByID)
	goodsReceipts.Put("/:id", goodsReceiptHandler.Update)

	// Job orders (protegido)
	jobOrders := protected.Group("/job-orders")
	jobOrderHandler := NewJobOrderHandler(deps.JobOrderUC, deps.ReceiptPDF)
	jobOrders.Post("/", jobOrderHandler.Create)
	jobOrders.Get("/", jobOrderHandler.List)
	jobOrders.Get("/:id", jobOrderHandler.GetByID)
	jobOrders.Post("/:id/status", jobOrderHandler.UpdateStatus)
	jobOrders.Get("/:id/receipt", jobOrderHandler.Receipt)

	// Sales orders (protegido)
	salesOrders := protected.Group("/sales-orders")
	salesOrderHandler := NewSalesOrderHandler(deps.SalesOrderUC, deps.ReceiptPDF)
	salesOrders.Post("/", salesOrderHandler.Create)
	salesOrders.Get("/", salesOrderHandler.List)
	salesOrders.Get("/:id", salesOrderHandler.GetByID)
	salesOrders.Get("/:id/receipt", salesOrderHandler.Receipt)

	// Payments (protegido)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Record)
}
