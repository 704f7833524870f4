package documents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain"
	"zenbill/internal/domain/tax"
	"zenbill/pkg/logger"
)

// tradeDoc is a minimal document type for exercising the generic
// service without pulling in a concrete document package.
type tradeDoc struct {
	TradeDocument
}

func (d *tradeDoc) Base() *entity.Document { return &d.Document }

func (d *tradeDoc) Recalc() {
	d.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())
}

func (d *tradeDoc) Clone() *tradeDoc {
	cp := *d
	cp.Lines = CloneLines(d.Lines)
	return &cp
}

type singleDocRepo struct {
	doc *tradeDoc
}

func (r *singleDocRepo) Create(ctx context.Context, doc *tradeDoc) error { return nil }

func (r *singleDocRepo) GetByID(ctx context.Context, docID id.ID) (*tradeDoc, error) {
	if r.doc == nil || r.doc.ID != docID {
		return nil, apperror.NewNotFound("document", docID.String())
	}
	return r.doc, nil
}

func (r *singleDocRepo) GetByNumber(ctx context.Context, number string) (*tradeDoc, error) {
	if r.doc == nil || r.doc.Number != number {
		return nil, apperror.NewNotFound("document", number)
	}
	return r.doc, nil
}

func (r *singleDocRepo) Update(ctx context.Context, doc *tradeDoc) error { return nil }
func (r *singleDocRepo) Delete(ctx context.Context, docID id.ID) error   { return nil }

func (r *singleDocRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*tradeDoc], error) {
	return domain.ListResult[*tradeDoc]{}, nil
}

func (r *singleDocRepo) GetForUpdate(ctx context.Context, docID id.ID) (*tradeDoc, error) {
	return r.GetByID(ctx, docID)
}

func newStoredDoc() *tradeDoc {
	d := &tradeDoc{TradeDocument: NewTradeDocument("org-1", "Karnataka", "Karnataka")}
	d.AddLine(Line{
		ItemID:   id.New(),
		ItemName: "Widget",
		Quantity: 10,
		Rate:     100,
		TaxRate:  18,
	})
	d.Recalc()
	return d
}

func observedContext(t *testing.T) (context.Context, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	testLogger := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	return logger.WithLogger(context.Background(), testLogger), logs
}

func TestGetByID_WarnsWhenStoredTotalsDrift(t *testing.T) {
	stored := newStoredDoc()
	// simulate a snapshot edited behind the engine's back
	stored.Totals.GrandTotal = stored.Totals.GrandTotal.Add(types.NewMoney(500))

	svc := NewService(ServiceConfig[*tradeDoc]{
		Repo:    &singleDocRepo{doc: stored},
		DocType: "document",
		CloneFn: (*tradeDoc).Clone,
	})

	ctx, logs := observedContext(t)
	got, err := svc.GetByID(ctx, stored.ID)
	require.NoError(t, err)

	// the stored snapshot comes back untouched; the drift is only logged
	assert.True(t, got.Totals.GrandTotal.Equal(stored.Totals.GrandTotal))

	entries := logs.FilterMessage("stored totals differ from recompute").All()
	require.Len(t, entries, 1)
	assert.Equal(t, apperror.CodeStaleTotals, entries[0].ContextMap()["code"])
}

func TestGetByID_NoWarnWhenTotalsMatch(t *testing.T) {
	stored := newStoredDoc()

	svc := NewService(ServiceConfig[*tradeDoc]{
		Repo:    &singleDocRepo{doc: stored},
		DocType: "document",
		CloneFn: (*tradeDoc).Clone,
	})

	ctx, logs := observedContext(t)
	_, err := svc.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}
