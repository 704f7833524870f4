package v1

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"zenbill/internal/domain"
	"zenbill/internal/domain/audit"
	"zenbill/internal/domain/auth"
	"zenbill/internal/domain/catalogs/customer"
	"zenbill/internal/domain/catalogs/item"
	"zenbill/internal/domain/catalogs/organization"
	"zenbill/internal/domain/catalogs/vendor"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/documents/challan"
	"zenbill/internal/domain/documents/payment"
	"zenbill/internal/domain/documents/purchaseorder"
	"zenbill/internal/domain/documents/quote"
	"zenbill/internal/domain/documents/salesorder"
	"zenbill/internal/domain/documents/vendorcredit"
	"zenbill/internal/domain/ewaybill"
	"zenbill/internal/domain/registers/outstanding"
	"zenbill/internal/domain/reports"
	"zenbill/internal/infrastructure/http/v1/handlers"
	"zenbill/internal/infrastructure/http/v1/middleware"
	"zenbill/internal/infrastructure/storage/postgres"
	"zenbill/internal/infrastructure/storage/postgres/catalog_repo"
	"zenbill/internal/infrastructure/storage/postgres/document_repo"
	"zenbill/internal/infrastructure/storage/postgres/register_repo"
	"zenbill/internal/infrastructure/storage/postgres/report_repo"
	"zenbill/internal/metadata"
	"zenbill/pkg/logger"
	"zenbill/pkg/numerator"
)

// RouterConfig contains everything the router needs to assemble the
// API: shared infrastructure plus the few services whose lifecycle is
// owned by main (rule-swappable e-way bills, auth).
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	Logger    *logger.Logger
	Numerator *numerator.Service

	JWTService  *auth.JWTService
	AuthService *auth.Service

	EWayBills *ewaybill.Service
	Metadata  *metadata.Registry
	Audit     *audit.Service

	// Idempotency enables replay protection when set.
	Idempotency *postgres.IdempotencyStore
}

// NewRouter creates and configures the Gin router with all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints are public.
	health := handlers.NewHealthHandler(cfg.Pool)
	healthGroup := router.Group("/health")
	{
		healthGroup.GET("/live", health.Live)
		healthGroup.GET("/ready", health.Ready)
		healthGroup.GET("/info", health.Info)
	}

	base := handlers.NewBaseHandler()

	// Auth endpoints: login/register/refresh are public, the rest sit
	// behind the JWT middleware.
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	authGroup := router.Group("/api/v1/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		protected := authGroup.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
			protected.GET("/roles", authHandler.ListRoles)

			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", authHandler.ListUsers)
				admin.POST("/roles", authHandler.CreateRole)
				admin.POST("/users/:id/roles", authHandler.AssignRole)
				admin.DELETE("/users/:id/roles/:code", authHandler.RevokeRole)
			}
		}
	}

	// Business API.
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTService))
	if cfg.Idempotency != nil {
		api.Use(middleware.Idempotency(cfg.Idempotency))
	}

	// Catalogs.
	customerSvc := customer.NewService(catalog_repo.NewCustomerRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)
	vendorSvc := vendor.NewService(catalog_repo.NewVendorRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)
	itemSvc := item.NewService(catalog_repo.NewItemRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)
	organizationSvc := organization.NewService(catalog_repo.NewOrganizationRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)

	customerHandler := handlers.NewCustomerHandler(base, customerSvc)
	customers := api.Group("/customers")
	RegisterCatalogRoutes(customers, customerHandler)
	customers.GET("/by-gstin/:gstin", customerHandler.GetByGSTIN)

	vendorHandler := handlers.NewVendorHandler(base, vendorSvc)
	vendors := api.Group("/vendors")
	RegisterCatalogRoutes(vendors, vendorHandler)
	vendors.GET("/by-gstin/:gstin", vendorHandler.GetByGSTIN)

	RegisterCatalogRoutes(api.Group("/items"), handlers.NewItemHandler(base, itemSvc))

	organizationHandler := handlers.NewOrganizationHandler(base, organizationSvc)
	organizations := api.Group("/organizations")
	organizations.GET("/default", organizationHandler.GetDefault)
	RegisterCatalogRoutes(organizations, organizationHandler)

	// Outstanding register, fed by document lifecycle hooks.
	outstandingSvc := outstanding.NewService(register_repo.NewOutstandingRepo(cfg.TxManager))

	// Documents.
	quoteSvc := quote.NewService(document_repo.NewQuoteRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)
	salesOrderSvc := salesorder.NewService(document_repo.NewSalesOrderRepo(cfg.TxManager), quoteSvc, cfg.TxManager, cfg.Numerator)
	challanSvc := challan.NewService(document_repo.NewChallanRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)
	purchaseOrderSvc := purchaseorder.NewService(document_repo.NewPurchaseOrderRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)
	vendorCreditSvc := vendorcredit.NewService(document_repo.NewVendorCreditRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)
	paymentSvc := payment.NewService(document_repo.NewPaymentRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)

	registerOutstandingHooks(outstandingSvc, salesOrderSvc, purchaseOrderSvc, vendorCreditSvc, paymentSvc)

	if cfg.Audit != nil {
		registerAuditHooks(cfg.Audit, "quote", quoteSvc.Hooks())
		registerAuditHooks(cfg.Audit, "sales_order", salesOrderSvc.Hooks())
		registerAuditHooks(cfg.Audit, "delivery_challan", challanSvc.Hooks())
		registerAuditHooks(cfg.Audit, "purchase_order", purchaseOrderSvc.Hooks())
		registerAuditHooks(cfg.Audit, "vendor_credit", vendorCreditSvc.Hooks())
		registerAuditHooks(cfg.Audit, "payment", paymentSvc.Hooks())
	}

	quoteHandler := handlers.NewQuoteHandler(base, quoteSvc, salesOrderSvc)
	quotes := api.Group("/quotes")
	RegisterDocumentRoutes(quotes, quoteHandler)
	quotes.POST("/:id/convert", quoteHandler.Convert)

	RegisterDocumentRoutes(api.Group("/sales-orders"), handlers.NewSalesOrderHandler(base, salesOrderSvc))
	RegisterDocumentRoutes(api.Group("/delivery-challans"), handlers.NewChallanHandler(base, challanSvc))
	RegisterDocumentRoutes(api.Group("/purchase-orders"), handlers.NewPurchaseOrderHandler(base, purchaseOrderSvc))

	vendorCreditHandler := handlers.NewVendorCreditHandler(base, vendorCreditSvc)
	vendorCredits := api.Group("/vendor-credits")
	RegisterDocumentRoutes(vendorCredits, vendorCreditHandler)
	vendorCredits.POST("/:id/apply", vendorCreditHandler.Apply)

	paymentHandler := handlers.NewPaymentHandler(base, paymentSvc)
	payments := api.Group("/payments")
	RegisterDocumentRoutes(payments, paymentHandler)
	payments.POST("/:id/allocate", paymentHandler.Allocate)

	// E-way bills.
	ewayBillHandler := handlers.NewEWayBillHandler(base, cfg.EWayBills)
	ewayBills := api.Group("/eway-bills")
	{
		ewayBills.GET("", ewayBillHandler.List)
		ewayBills.POST("", ewayBillHandler.Generate)
		ewayBills.POST("/check", ewayBillHandler.Check)
		ewayBills.GET("/:id", ewayBillHandler.Get)
	}

	// Outstanding balances and statements.
	outstandingHandler := handlers.NewOutstandingHandler(base, outstandingSvc)
	outstandingGroup := api.Group("/outstanding")
	{
		outstandingGroup.GET("/balances", outstandingHandler.Balances)
		outstandingGroup.GET("/:partyId/balance", outstandingHandler.Balance)
		outstandingGroup.GET("/:partyId/statement", outstandingHandler.Statement)
	}

	// Reports.
	reportsHandler := handlers.NewReportsHandler(base, reports.NewService(report_repo.NewReportRepo(cfg.TxManager)))
	reportsGroup := api.Group("/reports")
	{
		reportsGroup.GET("/sales-summary", reportsHandler.SalesSummary)
		reportsGroup.GET("/tax-summary", reportsHandler.TaxSummary)
		reportsGroup.GET("/journal", reportsHandler.DocumentJournal)
	}

	// Audit history.
	if cfg.Audit != nil {
		auditHandler := handlers.NewAuditHandler(base, cfg.Audit)
		api.GET("/audit/:entityType/:id", auditHandler.History)
	}

	// Entity metadata for UI builders.
	metadataHandler := handlers.NewMetadataHandler(base, cfg.Metadata)
	metaGroup := api.Group("/meta")
	{
		metaGroup.GET("/entities", metadataHandler.List)
		metaGroup.GET("/entities/:name", metadataHandler.Get)
	}

	return router
}

// registerAuditHooks records a full document snapshot on every
// lifecycle event. Hook failures are logged by the document service,
// not surfaced to the caller, so a broken audit sink never blocks a
// save; issue and cancel run inside the transition transaction and
// commit atomically with the status change.
func registerAuditHooks[T documents.Doc](rec *audit.Service, entityType string, hooks *domain.HookRegistry[T]) {
	record := func(action audit.Action) domain.Hook[T] {
		return func(ctx context.Context, doc T) error {
			snapshot, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshal %s snapshot: %w", entityType, err)
			}
			return rec.Record(ctx, audit.Entry{
				EntityType: entityType,
				EntityID:   doc.Base().ID,
				Action:     action,
				Changes:    snapshot,
			})
		}
	}

	hooks.On(domain.AfterCreate, record(audit.ActionCreate))
	hooks.On(domain.AfterUpdate, record(audit.ActionUpdate))
	hooks.On(domain.AfterIssue, record(audit.ActionIssue))
	hooks.On(domain.AfterCancel, record(audit.ActionCancel))
}

// registerOutstandingHooks wires document lifecycle events into the
// outstanding register. Hooks run inside the issue/cancel transaction,
// so movements commit atomically with the status change.
//
// Receivables grow when a sales order is issued and shrink when the
// customer pays. Payables grow with purchase orders and shrink with
// vendor credits and payments made.
func registerOutstandingHooks(
	reg *outstanding.Service,
	salesOrders *salesorder.Service,
	purchaseOrders *purchaseorder.Service,
	vendorCredits *vendorcredit.Service,
	payments *payment.Service,
) {
	salesOrders.Hooks().On(domain.AfterIssue, func(ctx context.Context, so *salesorder.SalesOrder) error {
		if so.Totals.BalanceDue.Sign() <= 0 {
			return nil
		}
		return reg.Post(ctx, outstanding.Movement{
			Period:       so.Date,
			RecorderID:   so.ID,
			RecorderType: "sales_order",
			PartyID:      so.CustomerID,
			PartyKind:    outstanding.KindCustomer,
			Direction:    outstanding.Debit,
			Amount:       so.Totals.BalanceDue,
		})
	})
	salesOrders.Hooks().On(domain.AfterCancel, func(ctx context.Context, so *salesorder.SalesOrder) error {
		return reg.Reverse(ctx, so.ID)
	})

	purchaseOrders.Hooks().On(domain.AfterIssue, func(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
		if po.Totals.BalanceDue.Sign() <= 0 {
			return nil
		}
		return reg.Post(ctx, outstanding.Movement{
			Period:       po.Date,
			RecorderID:   po.ID,
			RecorderType: "purchase_order",
			PartyID:      po.VendorID,
			PartyKind:    outstanding.KindVendor,
			Direction:    outstanding.Debit,
			Amount:       po.Totals.BalanceDue,
		})
	})
	purchaseOrders.Hooks().On(domain.AfterCancel, func(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
		return reg.Reverse(ctx, po.ID)
	})

	vendorCredits.Hooks().On(domain.AfterIssue, func(ctx context.Context, vc *vendorcredit.VendorCredit) error {
		if vc.Totals.GrandTotal.Sign() <= 0 {
			return nil
		}
		return reg.Post(ctx, outstanding.Movement{
			Period:       vc.Date,
			RecorderID:   vc.ID,
			RecorderType: "vendor_credit",
			PartyID:      vc.VendorID,
			PartyKind:    outstanding.KindVendor,
			Direction:    outstanding.Credit,
			Amount:       vc.Totals.GrandTotal,
		})
	})
	vendorCredits.Hooks().On(domain.AfterCancel, func(ctx context.Context, vc *vendorcredit.VendorCredit) error {
		return reg.Reverse(ctx, vc.ID)
	})

	payments.Hooks().On(domain.AfterIssue, func(ctx context.Context, p *payment.Payment) error {
		kind := outstanding.KindCustomer
		if p.Kind == payment.KindMade {
			kind = outstanding.KindVendor
		}
		return reg.Post(ctx, outstanding.Movement{
			Period:       p.Date,
			RecorderID:   p.ID,
			RecorderType: "payment",
			PartyID:      p.PartyID,
			PartyKind:    kind,
			Direction:    outstanding.Credit,
			Amount:       p.Amount,
		})
	})
	payments.Hooks().On(domain.AfterCancel, func(ctx context.Context, p *payment.Payment) error {
		return reg.Reverse(ctx, p.ID)
	})
}
