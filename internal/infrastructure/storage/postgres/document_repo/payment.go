package document_repo

import (
	"zenbill/internal/domain/documents/payment"
	"zenbill/internal/infrastructure/storage/postgres"
)

const paymentsTable = "doc_payments"

// PaymentRepo implements documents.Repository for payments.
type PaymentRepo struct {
	*BaseDocumentRepo[*payment.Payment]
}

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(txManager *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*payment.Payment](
			txManager,
			paymentsTable,
			"party_id",
			postgres.ExtractDBColumns[payment.Payment](),
			func() *payment.Payment { return &payment.Payment{} },
		),
	}
}
