package metadata

import (
	"zenbill/internal/domain/catalogs/customer"
	"zenbill/internal/domain/catalogs/item"
	"zenbill/internal/domain/catalogs/organization"
	"zenbill/internal/domain/catalogs/vendor"
	"zenbill/internal/domain/documents/challan"
	"zenbill/internal/domain/documents/payment"
	"zenbill/internal/domain/documents/purchaseorder"
	"zenbill/internal/domain/documents/quote"
	"zenbill/internal/domain/documents/salesorder"
	"zenbill/internal/domain/documents/vendorcredit"
	"zenbill/internal/domain/ewaybill"
)

// DefaultRegistry builds the registry of every exposed entity type.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(Inspect(customer.Customer{}, "customer", TypeCatalog))
	r.Register(Inspect(vendor.Vendor{}, "vendor", TypeCatalog))
	r.Register(Inspect(item.Item{}, "item", TypeCatalog))
	r.Register(Inspect(organization.Organization{}, "organization", TypeCatalog))

	r.Register(Inspect(quote.Quote{}, "quote", TypeDocument))
	r.Register(Inspect(salesorder.SalesOrder{}, "sales_order", TypeDocument))
	r.Register(Inspect(challan.DeliveryChallan{}, "delivery_challan", TypeDocument))
	r.Register(Inspect(purchaseorder.PurchaseOrder{}, "purchase_order", TypeDocument))
	r.Register(Inspect(vendorcredit.VendorCredit{}, "vendor_credit", TypeDocument))
	r.Register(Inspect(payment.Payment{}, "payment", TypeDocument))
	r.Register(Inspect(ewaybill.EWayBill{}, "eway_bill", TypeDocument))

	return r
}
