package outstanding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
)

type mockRepo struct {
	movements []Movement
}

func (m *mockRepo) CreateMovements(_ context.Context, movements []Movement) error {
	m.movements = append(m.movements, movements...)
	return nil
}

func (m *mockRepo) DeleteMovementsByRecorder(_ context.Context, recorderID id.ID) error {
	kept := m.movements[:0]
	for _, mv := range m.movements {
		if mv.RecorderID != recorderID {
			kept = append(kept, mv)
		}
	}
	m.movements = kept
	return nil
}

func (m *mockRepo) GetMovementsByRecorder(_ context.Context, recorderID id.ID) ([]Movement, error) {
	var out []Movement
	for _, mv := range m.movements {
		if mv.RecorderID == recorderID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *mockRepo) GetBalance(_ context.Context, partyID id.ID) (types.Money, error) {
	balance := types.Zero()
	for _, mv := range m.movements {
		if mv.PartyID == partyID {
			balance = balance.Add(mv.Signed())
		}
	}
	return balance, nil
}

func (m *mockRepo) GetBalances(_ context.Context, kind PartyKind, _, _ int) ([]Balance, error) {
	totals := make(map[id.ID]types.Money)
	for _, mv := range m.movements {
		if mv.PartyKind == kind {
			totals[mv.PartyID] = totals[mv.PartyID].Add(mv.Signed())
		}
	}
	var out []Balance
	for partyID, amount := range totals {
		out = append(out, Balance{PartyID: partyID, PartyKind: kind, Amount: amount})
	}
	return out, nil
}

func (m *mockRepo) GetBalanceAtDate(_ context.Context, partyID id.ID, date time.Time) (types.Money, error) {
	balance := types.Zero()
	for _, mv := range m.movements {
		if mv.PartyID == partyID && mv.Period.Before(date) {
			balance = balance.Add(mv.Signed())
		}
	}
	return balance, nil
}

func (m *mockRepo) GetMovements(_ context.Context, partyID id.ID, from, to time.Time) ([]Movement, error) {
	var out []Movement
	for _, mv := range m.movements {
		if mv.PartyID == partyID && !mv.Period.Before(from) && mv.Period.Before(to) {
			out = append(out, mv)
		}
	}
	return out, nil
}

func day(d int) time.Time {
	return time.Date(2026, time.April, d, 0, 0, 0, 0, time.UTC)
}

func TestPostAndBalance(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	customer := id.New()
	invoice := id.New()
	payment := id.New()

	err := svc.Post(ctx, Movement{
		Period:       day(1),
		RecorderID:   invoice,
		RecorderType: "sales_order",
		PartyID:      customer,
		PartyKind:    KindCustomer,
		Direction:    Debit,
		Amount:       types.MustMoney("11800"),
	})
	require.NoError(t, err)

	err = svc.Post(ctx, Movement{
		Period:       day(5),
		RecorderID:   payment,
		RecorderType: "payment",
		PartyID:      customer,
		PartyKind:    KindCustomer,
		Direction:    Credit,
		Amount:       types.MustMoney("5000"),
	})
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, customer)
	require.NoError(t, err)
	assert.True(t, balance.Equal(types.MustMoney("6800")), "got %s", balance)
}

func TestPostRejectsInvalidMovements(t *testing.T) {
	svc := NewService(&mockRepo{})
	ctx := context.Background()

	err := svc.Post(ctx, Movement{
		RecorderID: id.New(),
		PartyID:    id.New(),
		Direction:  Debit,
		Amount:     types.MustMoney("-10"),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	err = svc.Post(ctx, Movement{
		RecorderID: id.New(),
		Direction:  Debit,
		Amount:     types.MustMoney("10"),
	})
	require.Error(t, err)
}

func TestReverseRemovesDocumentMovements(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	customer := id.New()
	invoice := id.New()

	require.NoError(t, svc.Post(ctx, Movement{
		Period:     day(1),
		RecorderID: invoice,
		PartyID:    customer,
		PartyKind:  KindCustomer,
		Direction:  Debit,
		Amount:     types.MustMoney("1000"),
	}))

	require.NoError(t, svc.Reverse(ctx, invoice))

	balance, err := svc.GetBalance(ctx, customer)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestStatementRunningBalance(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	customer := id.New()

	post := func(d int, dir Direction, amount string) {
		require.NoError(t, svc.Post(ctx, Movement{
			Period:     day(d),
			RecorderID: id.New(),
			PartyID:    customer,
			PartyKind:  KindCustomer,
			Direction:  dir,
			Amount:     types.MustMoney(amount),
		}))
	}

	post(1, Debit, "1000")  // before period: opening
	post(10, Debit, "500")
	post(15, Credit, "300")

	stmt, err := svc.GetStatement(ctx, customer, day(5), day(20))
	require.NoError(t, err)

	assert.True(t, stmt.OpeningBalance.Equal(types.MustMoney("1000")))
	require.Len(t, stmt.Lines, 2)
	assert.True(t, stmt.Lines[0].RunningBalance.Equal(types.MustMoney("1500")))
	assert.True(t, stmt.Lines[1].RunningBalance.Equal(types.MustMoney("1200")))
	assert.True(t, stmt.ClosingBalance.Equal(types.MustMoney("1200")))
}

func TestStatementRejectsInvertedPeriod(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.GetStatement(context.Background(), id.New(), day(20), day(5))
	require.Error(t, err)
}
