package item

import (
	"context"
	"fmt"
	"time"

	"zenbill/internal/core/tx"
	"zenbill/internal/domain"
	"zenbill/pkg/numerator"
)

// Service provides business logic for the Item catalog.
type Service struct {
	*domain.CatalogService[*Item]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Item service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, it *Item) error {
	if it.Code == "" {
		cfg := numerator.DefaultConfig("ITEM")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		it.Code = code
	}
	return nil
}
