// Package main provides a CLI tool for seeding the database with initial data.
// Safe to run repeatedly: existing records are detected by code and skipped.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/catalogs/customer"
	"zenbill/internal/domain/catalogs/item"
	"zenbill/internal/domain/catalogs/organization"
	"zenbill/internal/domain/catalogs/vendor"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/documents/quote"
	"zenbill/internal/domain/documents/salesorder"
	"zenbill/internal/domain/tax"
	"zenbill/internal/infrastructure/storage/postgres"
	"zenbill/internal/infrastructure/storage/postgres/catalog_repo"
	"zenbill/internal/infrastructure/storage/postgres/document_repo"
	"zenbill/pkg/logger"
	"zenbill/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(txManager)

	orgs := organization.NewService(catalog_repo.NewOrganizationRepo(txManager), txManager, num)
	customers := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager, num)
	vendors := vendor.NewService(catalog_repo.NewVendorRepo(txManager), txManager, num)
	items := item.NewService(catalog_repo.NewItemRepo(txManager), txManager, num)

	org, err := seedOrganization(ctx, orgs, log)
	if err != nil {
		log.Fatalw("failed to seed organization", "error", err)
	}

	custs, err := seedCustomers(ctx, customers, log)
	if err != nil {
		log.Fatalw("failed to seed customers", "error", err)
	}

	if err := seedVendors(ctx, vendors, log); err != nil {
		log.Fatalw("failed to seed vendors", "error", err)
	}

	its, err := seedItems(ctx, items, log)
	if err != nil {
		log.Fatalw("failed to seed items", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		quotes := quote.NewService(document_repo.NewQuoteRepo(txManager), txManager, num)
		salesOrders := salesorder.NewService(document_repo.NewSalesOrderRepo(txManager), quotes, txManager, num)

		if err := seedDemoDocuments(ctx, quotes, salesOrders, org, custs, its, log); err != nil {
			log.Fatalw("failed to seed demo documents", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedOrganization(ctx context.Context, svc *organization.Service, log *logger.Logger) (*organization.Organization, error) {
	const code = "ORG-001"

	existing, err := svc.GetByCode(ctx, code)
	if err == nil {
		log.Infow("organization already exists", "code", code, "id", existing.ID)
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	org := organization.NewOrganization(code, "Acme Traders", "Karnataka")
	legalName := "Acme Traders Private Limited"
	gstin := "29AABCA1234F1Z5"
	org.LegalName = &legalName
	org.GSTIN = &gstin
	org.IsDefault = true
	org.Address = map[string]any{
		"line1":   "14 MG Road",
		"city":    "Bengaluru",
		"state":   "Karnataka",
		"pincode": "560001",
	}

	if err := svc.Create(ctx, org); err != nil {
		return nil, err
	}

	log.Infow("organization created", "code", code, "id", org.ID)
	return org, nil
}

func seedCustomers(ctx context.Context, svc *customer.Service, log *logger.Logger) ([]*customer.Customer, error) {
	seeds := []struct {
		code      string
		name      string
		treatment customer.GSTTreatment
		gstin     string
		state     string
	}{
		{"CUST-001", "Zen Retail", customer.TreatmentRegistered, "29AATCZ5678G1Z3", "Karnataka"},
		{"CUST-002", "Marina Exports", customer.TreatmentRegistered, "33AALCM9012H1Z7", "Tamil Nadu"},
		{"CUST-003", "Walk-in Customer", customer.TreatmentConsumer, "", "Karnataka"},
	}

	result := make([]*customer.Customer, 0, len(seeds))
	for _, s := range seeds {
		existing, err := svc.GetByCode(ctx, s.code)
		if err == nil {
			result = append(result, existing)
			continue
		}
		if !apperror.IsNotFound(err) {
			return nil, err
		}

		c := customer.NewCustomer(s.code, s.name, s.treatment)
		c.BillingState = s.state
		if s.gstin != "" {
			gstin := s.gstin
			c.GSTIN = &gstin
		}

		if err := svc.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("create customer %s: %w", s.code, err)
		}
		log.Infow("customer created", "code", s.code, "name", s.name)
		result = append(result, c)
	}

	return result, nil
}

func seedVendors(ctx context.Context, svc *vendor.Service, log *logger.Logger) error {
	seeds := []struct {
		code    string
		name    string
		gstin   string
		state   string
		tdsRate float64
	}{
		{"VEND-001", "Deccan Supplies", "29ABBCD3456J1Z9", "Karnataka", 2},
		{"VEND-002", "Northern Mills", "07AACCN7890K1Z1", "Delhi", 0},
	}

	for _, s := range seeds {
		_, err := svc.GetByCode(ctx, s.code)
		if err == nil {
			continue
		}
		if !apperror.IsNotFound(err) {
			return err
		}

		v := vendor.NewVendor(s.code, s.name, s.state)
		gstin := s.gstin
		v.GSTIN = &gstin
		if s.tdsRate > 0 {
			v.DefaultTDSMode = tax.ChargeRate
			v.DefaultTDSValue = s.tdsRate
		}

		if err := svc.Create(ctx, v); err != nil {
			return fmt.Errorf("create vendor %s: %w", s.code, err)
		}
		log.Infow("vendor created", "code", s.code, "name", s.name)
	}

	return nil
}

func seedItems(ctx context.Context, svc *item.Service, log *logger.Logger) ([]*item.Item, error) {
	seeds := []struct {
		code         string
		name         string
		kind         item.Kind
		unit         string
		hsn          string
		sellingRate  float64
		purchaseRate float64
		taxRate      float64
		taxName      string
		nonTaxable   bool
	}{
		{"ITM-001", "A4 Copier Paper (500 sheets)", item.KindGoods, "pack", "4802", 320, 240, 12, "GST12", false},
		{"ITM-002", "Ballpoint Pen (blue)", item.KindGoods, "pcs", "9608", 15, 9, 18, "GST18", false},
		{"ITM-003", "Desktop Stapler", item.KindGoods, "pcs", "8305", 210, 150, 18, "GST18", false},
		{"ITM-004", "Lever Arch File", item.KindGoods, "pcs", "4820", 95, 62, 12, "GST12", false},
		{"ITM-005", "Fresh Produce Hamper", item.KindGoods, "box", "0701", 450, 300, 0, "", true},
		{"ITM-006", "Courier Delivery", item.KindService, "trip", "9968", 150, 0, 18, "GST18", false},
	}

	result := make([]*item.Item, 0, len(seeds))
	for _, s := range seeds {
		existing, err := svc.GetByCode(ctx, s.code)
		if err == nil {
			result = append(result, existing)
			continue
		}
		if !apperror.IsNotFound(err) {
			return nil, err
		}

		i := item.NewItem(s.code, s.name, s.kind)
		i.Unit = s.unit
		if s.hsn != "" {
			hsn := s.hsn
			i.HSN = &hsn
		}
		i.SellingRate = types.NewMoney(s.sellingRate)
		i.PurchaseRate = types.NewMoney(s.purchaseRate)
		i.TaxRate = s.taxRate
		i.TaxName = s.taxName
		i.NonTaxable = s.nonTaxable

		if err := svc.Create(ctx, i); err != nil {
			return nil, fmt.Errorf("create item %s: %w", s.code, err)
		}
		log.Infow("item created", "code", s.code, "name", s.name)
		result = append(result, i)
	}

	return result, nil
}

// seedDemoDocuments creates a sample quote and converts it into a sales
// order. Skipped when any quotes already exist so reruns stay clean.
func seedDemoDocuments(
	ctx context.Context,
	quotes *quote.Service,
	salesOrders *salesorder.Service,
	org *organization.Organization,
	custs []*customer.Customer,
	its []*item.Item,
	log *logger.Logger,
) error {
	if len(custs) == 0 || len(its) < 2 {
		log.Warn("not enough catalog data for demo documents, skipping")
		return nil
	}

	existing, err := quotes.List(ctx, documents.ListFilter{})
	if err != nil {
		return err
	}
	if existing.TotalCount > 0 {
		log.Infow("demo documents already exist, skipping", "quotes", existing.TotalCount)
		return nil
	}

	log.Info("seeding demo documents...")

	cust := custs[0]
	q := quote.New(org.ID.String(), cust.ID, org.State, cust.BillingState)
	q.CustomerName = cust.Name
	expiry := time.Now().AddDate(0, 1, 0)
	q.ExpiryDate = &expiry

	for i, it := range its[:2] {
		line := documents.NewLine(it.ID, it.Name, float64(10*(i+1)), it.SellingRate.InexactFloat64(), it.TaxRate)
		line.LineNo = i + 1
		line.Unit = it.Unit
		if it.HSN != nil {
			line.HSN = *it.HSN
		}
		line.TaxName = it.TaxName
		line.NonTaxable = it.NonTaxable
		q.AddLine(line)
	}

	if err := quotes.Create(ctx, q); err != nil {
		return fmt.Errorf("create quote: %w", err)
	}

	if _, err := quotes.Issue(ctx, q.ID); err != nil {
		return fmt.Errorf("issue quote: %w", err)
	}

	so, err := salesOrders.CreateFromQuote(ctx, q.ID)
	if err != nil {
		return fmt.Errorf("convert quote: %w", err)
	}

	log.Infow("demo documents seeded",
		"quote", q.Number,
		"sales_order", so.Number,
	)
	return nil
}
