package ewaybill

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/core/tx"
	"zenbill/internal/core/types"
	"zenbill/internal/domain"
	"zenbill/pkg/logger"
	"zenbill/pkg/numerator"
)

// Repository persists e-way bills.
type Repository interface {
	Create(ctx context.Context, bill *EWayBill) error
	GetByID(ctx context.Context, billID id.ID) (*EWayBill, error)
	GetBySourceDocument(ctx context.Context, sourceID id.ID) (*EWayBill, error)
	Update(ctx context.Context, bill *EWayBill) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*EWayBill], error)
}

// GenerateRequest carries everything needed to generate a bill.
type GenerateRequest struct {
	OrganizationID     string
	SourceDocumentID   id.ID
	SourceDocumentType string
	SourceNumber       string
	GrandTotal         types.Money
	InterState         bool
	VehicleNumber      string
	TransporterName    string
	TransporterGSTIN   string
	DistanceKm         float64
}

// Service generates and tracks e-way bills.
type Service struct {
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service

	rulesMu sync.RWMutex
	rules   *RuleEngine
}

// NewService creates a new e-way bill service.
func NewService(repo Repository, rules *RuleEngine, txManager tx.Manager, num *numerator.Service) *Service {
	return &Service{
		repo:      repo,
		rules:     rules,
		txManager: txManager,
		numerator: num,
	}
}

// SetRules swaps the applicability rule. Called when the configured
// expression changes at runtime.
func (s *Service) SetRules(rules *RuleEngine) {
	s.rulesMu.Lock()
	s.rules = rules
	s.rulesMu.Unlock()
}

func (s *Service) ruleEngine() *RuleEngine {
	s.rulesMu.RLock()
	defer s.rulesMu.RUnlock()
	return s.rules
}

// Required reports whether the consignment needs an e-way bill.
func (s *Service) Required(req GenerateRequest) (bool, error) {
	return s.ruleEngine().Required(RuleInput{
		GrandTotal: req.GrandTotal.InexactFloat64(),
		InterState: req.InterState,
		DocType:    req.SourceDocumentType,
		DistanceKm: req.DistanceKm,
	})
}

// Generate creates an e-way bill for a consignment. Consignments below
// the threshold are rejected; a source document gets at most one bill.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*EWayBill, error) {
	required, err := s.Required(req)
	if err != nil {
		return nil, err
	}
	if !required {
		return nil, apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Consignment does not require an e-way bill",
		).WithDetail("grand_total", req.GrandTotal.String())
	}

	if existing, err := s.repo.GetBySourceDocument(ctx, req.SourceDocumentID); err == nil && existing != nil {
		return nil, apperror.NewConflict("e-way bill already exists for this document").
			WithDetail("ewaybill_id", existing.ID.String())
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	bill := New(req.OrganizationID, req.SourceDocumentID, req.SourceDocumentType, req.SourceNumber, req.GrandTotal)
	bill.VehicleNumber = req.VehicleNumber
	bill.TransporterName = req.TransporterName
	bill.TransporterGSTIN = req.TransporterGSTIN
	bill.DistanceKm = req.DistanceKm
	bill.ValidUntil = Validity(bill.Date, req.DistanceKm)

	if err := bill.Validate(ctx); err != nil {
		return nil, err
	}

	cfg := numerator.DefaultConfig("EWB")
	number, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate number: %w", err)
	}
	bill.Number = number

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "e-way bill generated",
		"id", bill.ID,
		"number", bill.Number,
		"source", req.SourceNumber)

	return bill, nil
}

// GetByID retrieves an e-way bill.
func (s *Service) GetByID(ctx context.Context, billID id.ID) (*EWayBill, error) {
	bill, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("ewaybill", billID.String())
		}
		return nil, err
	}
	return bill, nil
}

// List retrieves e-way bills with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*EWayBill], error) {
	return s.repo.List(ctx, filter)
}
