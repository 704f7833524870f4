package salesorder

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/documents/quote"
	"zenbill/pkg/numerator"
)

type memQuoteRepo struct {
	quotes     map[id.ID]*quote.Quote
	failUpdate error
}

func newMemQuoteRepo() *memQuoteRepo {
	return &memQuoteRepo{quotes: make(map[id.ID]*quote.Quote)}
}

func (r *memQuoteRepo) Create(ctx context.Context, q *quote.Quote) error {
	r.quotes[q.ID] = q
	return nil
}

func (r *memQuoteRepo) GetByID(ctx context.Context, docID id.ID) (*quote.Quote, error) {
	q, ok := r.quotes[docID]
	if !ok {
		return nil, apperror.NewNotFound("quote", docID.String())
	}
	cp := *q
	return &cp, nil
}

func (r *memQuoteRepo) GetByNumber(ctx context.Context, number string) (*quote.Quote, error) {
	for _, q := range r.quotes {
		if q.Number == number {
			cp := *q
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("quote", number)
}

func (r *memQuoteRepo) Update(ctx context.Context, q *quote.Quote) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.quotes[q.ID] = q
	return nil
}

func (r *memQuoteRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.quotes, docID)
	return nil
}

func (r *memQuoteRepo) List(ctx context.Context, filter documents.ListFilter) (domain.ListResult[*quote.Quote], error) {
	return domain.ListResult[*quote.Quote]{}, nil
}

func (r *memQuoteRepo) GetForUpdate(ctx context.Context, docID id.ID) (*quote.Quote, error) {
	return r.GetByID(ctx, docID)
}

type memOrderRepo struct {
	orders map[id.ID]*SalesOrder
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[id.ID]*SalesOrder)}
}

func (r *memOrderRepo) Create(ctx context.Context, so *SalesOrder) error {
	r.orders[so.ID] = so
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, docID id.ID) (*SalesOrder, error) {
	so, ok := r.orders[docID]
	if !ok {
		return nil, apperror.NewNotFound("sales_order", docID.String())
	}
	return so, nil
}

func (r *memOrderRepo) GetByNumber(ctx context.Context, number string) (*SalesOrder, error) {
	for _, so := range r.orders {
		if so.Number == number {
			return so, nil
		}
	}
	return nil, apperror.NewNotFound("sales_order", number)
}

func (r *memOrderRepo) Update(ctx context.Context, so *SalesOrder) error {
	r.orders[so.ID] = so
	return nil
}

func (r *memOrderRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.orders, docID)
	return nil
}

func (r *memOrderRepo) List(ctx context.Context, filter documents.ListFilter) (domain.ListResult[*SalesOrder], error) {
	return domain.ListResult[*SalesOrder]{}, nil
}

func (r *memOrderRepo) GetForUpdate(ctx context.Context, docID id.ID) (*SalesOrder, error) {
	return r.GetByID(ctx, docID)
}

// memTx mimics transactional semantics over the in-memory repos: the
// outermost call snapshots both repos and restores them when the
// function errors. Nested calls join the enclosing transaction.
type memTx struct {
	quotes *memQuoteRepo
	orders *memOrderRepo

	depth       int
	savedQuotes map[id.ID]*quote.Quote
	savedOrders map[id.ID]*SalesOrder
}

func (m *memTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.depth == 0 {
		m.savedQuotes = make(map[id.ID]*quote.Quote, len(m.quotes.quotes))
		for k, v := range m.quotes.quotes {
			cp := *v
			m.savedQuotes[k] = &cp
		}
		m.savedOrders = make(map[id.ID]*SalesOrder, len(m.orders.orders))
		for k, v := range m.orders.orders {
			m.savedOrders[k] = v
		}
	}

	m.depth++
	err := fn(ctx)
	m.depth--

	if err != nil && m.depth == 0 {
		m.quotes.quotes = m.savedQuotes
		m.orders.orders = m.savedOrders
	}
	return err
}

type seqRow struct{ val int64 }

func (r *seqRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = r.val
		}
	}
	return nil
}

type seqQuerier struct {
	mu  sync.Mutex
	cur int64
}

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cur++
	return &seqRow{val: q.cur}
}

type conversionHarness struct {
	quoteRepo *memQuoteRepo
	orderRepo *memOrderRepo
	quotes    *quote.Service
	orders    *Service
}

func newConversionHarness() *conversionHarness {
	quoteRepo := newMemQuoteRepo()
	orderRepo := newMemOrderRepo()
	txm := &memTx{quotes: quoteRepo, orders: orderRepo}
	num := numerator.New(&seqQuerier{})

	quotes := quote.NewService(quoteRepo, txm, num)
	orders := NewService(orderRepo, quotes, txm, num)

	return &conversionHarness{
		quoteRepo: quoteRepo,
		orderRepo: orderRepo,
		quotes:    quotes,
		orders:    orders,
	}
}

func (h *conversionHarness) seedQuote(t *testing.T) *quote.Quote {
	t.Helper()
	q := quote.New("org-1", id.New(), "Karnataka", "Karnataka")
	q.Number = "QT-0001"
	q.AddLine(documents.Line{
		ItemID:   id.New(),
		ItemName: "Widget",
		Quantity: 10,
		Rate:     100,
		TaxRate:  18,
	})
	q.Recalc()
	require.NoError(t, h.quoteRepo.Create(context.Background(), q))
	return q
}

func TestCreateFromQuote_Succeeds(t *testing.T) {
	h := newConversionHarness()
	q := h.seedQuote(t)

	so, err := h.orders.CreateFromQuote(context.Background(), q.ID)
	require.NoError(t, err)
	require.NotNil(t, so)
	assert.NotEmpty(t, so.Number)
	assert.True(t, so.Totals.GrandTotal.Equal(q.Totals.GrandTotal))

	stored, err := h.quoteRepo.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsConverted())
	require.NotNil(t, stored.ConvertedToID)
	assert.Equal(t, so.ID, *stored.ConvertedToID)
}

func TestCreateFromQuote_FlagFailureLeavesNoOrder(t *testing.T) {
	h := newConversionHarness()
	q := h.seedQuote(t)
	h.quoteRepo.failUpdate = errors.New("connection reset")

	so, err := h.orders.CreateFromQuote(context.Background(), q.ID)
	require.Error(t, err)
	assert.Nil(t, so)

	// the order insert rolls back with the failed conversion flag
	assert.Empty(t, h.orderRepo.orders)

	stored, err := h.quoteRepo.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsConverted())
}

func TestCreateFromQuote_SecondConversionRejected(t *testing.T) {
	h := newConversionHarness()
	q := h.seedQuote(t)

	first, err := h.orders.CreateFromQuote(context.Background(), q.ID)
	require.NoError(t, err)

	second, err := h.orders.CreateFromQuote(context.Background(), q.ID)
	require.Error(t, err)
	assert.Nil(t, second)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDocumentConverted, appErr.Code)

	// only the first order survives
	assert.Len(t, h.orderRepo.orders, 1)
	_, err = h.orderRepo.GetByID(context.Background(), first.ID)
	assert.NoError(t, err)
}
