package document_repo

import (
	"zenbill/internal/domain/documents/purchaseorder"
	"zenbill/internal/infrastructure/storage/postgres"
)

const purchaseOrdersTable = "doc_purchase_orders"

// PurchaseOrderRepo implements documents.Repository for purchase orders.
type PurchaseOrderRepo struct {
	*BaseDocumentRepo[*purchaseorder.PurchaseOrder]
}

// NewPurchaseOrderRepo creates a new purchase order repository.
func NewPurchaseOrderRepo(txManager *postgres.TxManager) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*purchaseorder.PurchaseOrder](
			txManager,
			purchaseOrdersTable,
			"vendor_id",
			postgres.ExtractDBColumns[purchaseorder.PurchaseOrder](),
			func() *purchaseorder.PurchaseOrder { return &purchaseorder.PurchaseOrder{} },
		),
	}
}
