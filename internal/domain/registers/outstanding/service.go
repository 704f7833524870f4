package outstanding

import (
	"context"
	"fmt"
	"time"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/pkg/logger"
)

// Service provides business operations for the outstanding register.
// Posting runs inside the caller's transaction; the document lifecycle
// owns commit and rollback.
type Service struct {
	repo Repository
}

// NewService creates a new outstanding register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Post records a single movement from a document.
func (s *Service) Post(ctx context.Context, m Movement) error {
	return s.PostAll(ctx, []Movement{m})
}

// PostAll validates and records movements from a document posting.
func (s *Service) PostAll(ctx context.Context, movements []Movement) error {
	if len(movements) == 0 {
		return nil
	}

	for i := range movements {
		m := &movements[i]
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder is required", i))
		}
		if id.IsNil(m.PartyID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: party is required", i))
		}
		if m.Amount.Sign() <= 0 {
			return apperror.NewValidation(fmt.Sprintf("movement %d: amount must be positive", i))
		}
		if id.IsNil(m.ID) {
			m.ID = id.New()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "posted outstanding movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID)

	return nil
}

// Reverse removes every movement a document posted. Called when the
// document is cancelled.
func (s *Service) Reverse(ctx context.Context, recorderID id.ID) error {
	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID); err != nil {
		return fmt.Errorf("reverse movements: %w", err)
	}

	logger.Info(ctx, "reversed outstanding movements", "recorder_id", recorderID)
	return nil
}

// GetBalance returns the current outstanding amount for a party.
func (s *Service) GetBalance(ctx context.Context, partyID id.ID) (types.Money, error) {
	return s.repo.GetBalance(ctx, partyID)
}

// GetBalances returns non-zero balances for one party kind.
func (s *Service) GetBalances(ctx context.Context, kind PartyKind, limit, offset int) ([]Balance, error) {
	if kind != KindCustomer && kind != KindVendor {
		return nil, apperror.NewValidation("party kind must be customer or vendor")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.GetBalances(ctx, kind, limit, offset)
}

// GetStatement builds the party ledger for a period: opening balance,
// movements with running totals, closing balance.
func (s *Service) GetStatement(ctx context.Context, partyID id.ID, from, to time.Time) (*Statement, error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperror.NewValidation("fromDate and toDate are required")
	}
	if from.After(to) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}

	opening, err := s.repo.GetBalanceAtDate(ctx, partyID, from)
	if err != nil {
		return nil, fmt.Errorf("opening balance: %w", err)
	}

	movements, err := s.repo.GetMovements(ctx, partyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get movements: %w", err)
	}

	stmt := &Statement{
		PartyID:        partyID,
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: opening,
		Lines:          make([]StatementLine, 0, len(movements)),
	}

	running := opening
	for _, m := range movements {
		running = running.Add(m.Signed())
		stmt.Lines = append(stmt.Lines, StatementLine{
			Movement:       m,
			RunningBalance: running,
		})
	}
	stmt.ClosingBalance = running

	return stmt, nil
}
