package document_repo

import (
	"zenbill/internal/domain/documents/vendorcredit"
	"zenbill/internal/infrastructure/storage/postgres"
)

const vendorCreditsTable = "doc_vendor_credits"

// VendorCreditRepo implements documents.Repository for vendor credits.
type VendorCreditRepo struct {
	*BaseDocumentRepo[*vendorcredit.VendorCredit]
}

// NewVendorCreditRepo creates a new vendor credit repository.
func NewVendorCreditRepo(txManager *postgres.TxManager) *VendorCreditRepo {
	return &VendorCreditRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*vendorcredit.VendorCredit](
			txManager,
			vendorCreditsTable,
			"vendor_id",
			postgres.ExtractDBColumns[vendorcredit.VendorCredit](),
			func() *vendorcredit.VendorCredit { return &vendorcredit.VendorCredit{} },
		),
	}
}
