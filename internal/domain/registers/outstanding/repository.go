package outstanding

import (
	"context"
	"time"

	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
)

// Repository defines operations for the outstanding register.
type Repository interface {
	// CreateMovements batch inserts movements (used during posting).
	CreateMovements(ctx context.Context, movements []Movement) error

	// DeleteMovementsByRecorder removes all movements a document posted.
	// Used when a document is cancelled.
	DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID) error

	// GetMovementsByRecorder retrieves all movements for a document.
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]Movement, error)

	// GetBalance returns the current balance for a party.
	GetBalance(ctx context.Context, partyID id.ID) (types.Money, error)

	// GetBalances returns non-zero balances for one party kind.
	GetBalances(ctx context.Context, kind PartyKind, limit, offset int) ([]Balance, error)

	// GetBalanceAtDate returns the party balance before the given date.
	GetBalanceAtDate(ctx context.Context, partyID id.ID, date time.Time) (types.Money, error)

	// GetMovements returns movements for a party within a period,
	// ordered by period then insertion.
	GetMovements(ctx context.Context, partyID id.ID, from, to time.Time) ([]Movement, error)
}
