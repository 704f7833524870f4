package document_repo

import (
	"zenbill/internal/domain/documents/challan"
	"zenbill/internal/infrastructure/storage/postgres"
)

const challansTable = "doc_delivery_challans"

// ChallanRepo implements documents.Repository for delivery challans.
type ChallanRepo struct {
	*BaseDocumentRepo[*challan.DeliveryChallan]
}

// NewChallanRepo creates a new delivery challan repository.
func NewChallanRepo(txManager *postgres.TxManager) *ChallanRepo {
	return &ChallanRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*challan.DeliveryChallan](
			txManager,
			challansTable,
			"customer_id",
			postgres.ExtractDBColumns[challan.DeliveryChallan](),
			func() *challan.DeliveryChallan { return &challan.DeliveryChallan{} },
		),
	}
}
