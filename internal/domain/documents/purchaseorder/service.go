package purchaseorder

import (
	"zenbill/internal/core/tx"
	"zenbill/internal/domain/documents"
	"zenbill/pkg/numerator"
)

// Repository persists purchase orders.
type Repository interface {
	documents.Repository[*PurchaseOrder]
}

// Service provides business operations for purchase orders.
type Service struct {
	*documents.Service[*PurchaseOrder]
	repo Repository
}

// NewService creates a new purchase order service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewService(documents.ServiceConfig[*PurchaseOrder]{
		Repo:           repo,
		TxManager:      txManager,
		Numerator:      num,
		DocType:        "purchase_order",
		NumberPrefix:   "PO",
		NumberStrategy: numerator.StrategyStrict,
		CloneFn:        (*PurchaseOrder).Clone,
	})
	return &Service{
		Service: base,
		repo:    repo,
	}
}
