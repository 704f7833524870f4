package documents

import (
	"context"
	"fmt"
	"time"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/tx"
	"zenbill/internal/domain"
	"zenbill/internal/domain/audit"
	"zenbill/internal/domain/tax"
	"zenbill/pkg/logger"
	"zenbill/pkg/numerator"
)

// Doc is implemented by every document type handled by the generic
// service. Recalc re-derives all computed amounts from current inputs;
// each document type binds its own quantity policy and TDS/TCS charges.
type Doc interface {
	entity.Validatable

	// Base exposes the embedded document header.
	Base() *entity.Document

	// Recalc recomputes derived amounts from current inputs.
	Recalc()
}

// ListFilter for filtering documents.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	PartyID  *id.ID
	Status   *entity.Status
	DateFrom *time.Time
	DateTo   *time.Time
}

// Repository defines persistence operations for a document type.
type Repository[T Doc] interface {
	Create(ctx context.Context, doc T) error
	GetByID(ctx context.Context, docID id.ID) (T, error)
	GetByNumber(ctx context.Context, number string) (T, error)
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, docID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[T], error)

	// GetForUpdate retrieves with a row lock for transactional updates.
	GetForUpdate(ctx context.Context, docID id.ID) (T, error)
}

// ServiceConfig configures the generic document service.
type ServiceConfig[T Doc] struct {
	Repo      Repository[T]
	TxManager tx.Manager
	Numerator *numerator.Service

	// DocType for error messages ("quote", "sales_order", ...)
	DocType string

	// NumberPrefix for generated numbers ("QT", "SO", ...)
	NumberPrefix string

	// NumberStrategy picks strict or cached numbering
	NumberStrategy numerator.Strategy

	// CloneFn deep-copies a document body for the Copy operation
	CloneFn func(T) T
}

// Service provides CRUD and lifecycle operations shared by every
// document type. Derived totals are recomputed on every create and
// update so a stored snapshot can never drift silently past a save.
type Service[T Doc] struct {
	repo      Repository[T]
	txManager tx.Manager
	numerator *numerator.Service
	hooks     *domain.HookRegistry[T]

	docType        string
	numberPrefix   string
	numberStrategy numerator.Strategy
	cloneFn        func(T) T
}

// NewService creates a new document service.
func NewService[T Doc](cfg ServiceConfig[T]) *Service[T] {
	return &Service[T]{
		repo:           cfg.Repo,
		txManager:      cfg.TxManager,
		numerator:      cfg.Numerator,
		hooks:          domain.NewHookRegistry[T](),
		docType:        cfg.DocType,
		numberPrefix:   cfg.NumberPrefix,
		numberStrategy: cfg.NumberStrategy,
		cloneFn:        cfg.CloneFn,
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service[T]) Hooks() *domain.HookRegistry[T] {
	return s.hooks
}

// Create recalculates, validates, numbers and persists a new document.
func (s *Service[T]) Create(ctx context.Context, doc T) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	doc.Recalc()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	base := doc.Base()
	audit.EnrichCreatedBy(ctx, &base.BaseDocument)
	if base.Number == "" {
		cfg := numerator.DefaultConfig(s.numberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg,
			&numerator.Options{Strategy: s.numberStrategy}, base.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		base.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create %s: %w", s.docType, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "doc_type", s.docType, "error", err)
	}

	logger.Info(ctx, "document created",
		"doc_type", s.docType,
		"id", base.ID,
		"number", base.Number)

	return nil
}

// GetByID retrieves a document.
func (s *Service[T]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return doc, apperror.NewNotFound(s.docType, docID.String())
		}
		return doc, err
	}
	s.flagStaleTotals(ctx, doc)
	return doc, nil
}

// totalsCarrier is implemented by documents that persist a computed
// money snapshot alongside their raw inputs.
type totalsCarrier interface {
	TotalsSnapshot() tax.Totals
}

// flagStaleTotals recomputes the totals on a scratch copy and warns
// when the stored snapshot disagrees. The snapshot only drifts through
// direct database edits, so the read returns the stored values
// untouched and leaves the fix to a regular update.
func (s *Service[T]) flagStaleTotals(ctx context.Context, doc T) {
	stored, ok := any(doc).(totalsCarrier)
	if !ok || s.cloneFn == nil {
		return
	}

	scratch := s.cloneFn(doc)
	scratch.Recalc()
	fresh, ok := any(scratch).(totalsCarrier)
	if !ok || stored.TotalsSnapshot().Equal(fresh.TotalsSnapshot()) {
		return
	}

	logger.Warn(ctx, "stored totals differ from recompute",
		"code", apperror.CodeStaleTotals,
		"doc_type", s.docType,
		"id", doc.Base().ID,
		"stored_grand_total", stored.TotalsSnapshot().GrandTotal,
		"recomputed_grand_total", fresh.TotalsSnapshot().GrandTotal)
}

// GetByNumber retrieves a document by its number.
func (s *Service[T]) GetByNumber(ctx context.Context, number string) (T, error) {
	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return doc, apperror.NewNotFound(s.docType, number)
		}
		return doc, err
	}
	s.flagStaleTotals(ctx, doc)
	return doc, nil
}

// Update recalculates, validates and persists changes to a document.
// Cancelled documents reject updates.
func (s *Service[T]) Update(ctx context.Context, doc T) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Base().CanModify(); err != nil {
		return err
	}

	audit.EnrichUpdatedBy(ctx, &doc.Base().BaseDocument)
	doc.Recalc()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update %s: %w", s.docType, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterUpdate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-update hook failed", "doc_type", s.docType, "error", err)
	}

	return nil
}

// Delete soft-deletes a document. Issued documents must be cancelled
// first.
func (s *Service[T]) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Base().Status == entity.StatusIssued {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Cannot delete an issued document. Cancel it first.",
		).WithDetail("document_id", docID.String())
	}

	if err := s.hooks.RunBeforeDelete(ctx, doc); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, docID)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterDelete(ctx, doc); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "doc_type", s.docType, "error", err)
	}

	return nil
}

// Issue transitions a draft document to issued. After-issue hooks run
// inside the same transaction so register postings commit atomically
// with the status change.
func (s *Service[T]) Issue(ctx context.Context, docID id.ID) (T, error) {
	return s.transition(ctx, docID, domain.AfterIssue, func(base *entity.Document) error {
		return base.Issue()
	})
}

// Cancel transitions a document to cancelled.
func (s *Service[T]) Cancel(ctx context.Context, docID id.ID) (T, error) {
	return s.transition(ctx, docID, domain.AfterCancel, func(base *entity.Document) error {
		return base.Cancel()
	})
}

func (s *Service[T]) transition(ctx context.Context, docID id.ID, event domain.HookEvent, fn func(*entity.Document) error) (T, error) {
	var doc T
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound(s.docType, docID.String())
			}
			return err
		}

		if err := fn(doc.Base()); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}

		return s.hooks.Run(ctx, event, doc)
	})
	return doc, err
}

// Copy creates a new draft from an existing document. The copy gets a
// fresh identity, a new number, today's date and draft status; lines
// and charges are carried over and totals recomputed on create.
func (s *Service[T]) Copy(ctx context.Context, docID id.ID) (T, error) {
	var zero T

	src, err := s.GetByID(ctx, docID)
	if err != nil {
		return zero, err
	}

	if s.cloneFn == nil {
		return zero, apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			fmt.Sprintf("Copying is not supported for %s documents", s.docType),
		)
	}

	cp := s.cloneFn(src)
	cp.Base().ResetAsCopy()

	if err := s.Create(ctx, cp); err != nil {
		return zero, err
	}

	return cp, nil
}

// List retrieves documents with filtering.
func (s *Service[T]) List(ctx context.Context, filter ListFilter) (domain.ListResult[T], error) {
	return s.repo.List(ctx, filter)
}
