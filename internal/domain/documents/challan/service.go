package challan

import (
	"zenbill/internal/core/tx"
	"zenbill/internal/domain/documents"
	"zenbill/pkg/numerator"
)

// Repository persists delivery challans.
type Repository interface {
	documents.Repository[*DeliveryChallan]
}

// Service provides business operations for delivery challans.
// Challans are internal movement documents, so cached numbering is fine.
type Service struct {
	*documents.Service[*DeliveryChallan]
	repo Repository
}

// NewService creates a new delivery challan service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewService(documents.ServiceConfig[*DeliveryChallan]{
		Repo:           repo,
		TxManager:      txManager,
		Numerator:      num,
		DocType:        "delivery_challan",
		NumberPrefix:   "DC",
		NumberStrategy: numerator.StrategyCached,
		CloneFn:        (*DeliveryChallan).Clone,
	})
	return &Service{
		Service: base,
		repo:    repo,
	}
}
