// Package register_repo provides PostgreSQL implementations for
// accumulation registers.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/registers/outstanding"
	"zenbill/internal/infrastructure/storage/postgres"
)

// Ensure interface compliance
var _ outstanding.Repository = (*OutstandingRepo)(nil)

// OutstandingRepo implements outstanding.Repository over the
// reg_outstanding table. Balances are always derived by summing
// movements, there is no separate balance table to drift.
type OutstandingRepo struct {
	txManager *postgres.TxManager
	batch     *postgres.BatchInserter
}

// NewOutstandingRepo creates a new outstanding register repository.
func NewOutstandingRepo(txManager *postgres.TxManager) *OutstandingRepo {
	return &OutstandingRepo{
		txManager: txManager,
		batch:     postgres.NewBatchInserter(txManager),
	}
}

var movementColumns = []string{
	"id", "period", "recorder_id", "recorder_type",
	"party_id", "party_kind", "direction", "amount", "created_at",
}

// CreateMovements bulk inserts movements via the COPY protocol. Must be
// called inside a transaction; posting always is.
func (r *OutstandingRepo) CreateMovements(ctx context.Context, movements []outstanding.Movement) error {
	rows := make([][]any, len(movements))
	for i, m := range movements {
		rows[i] = []any{
			m.ID, m.Period, m.RecorderID, m.RecorderType,
			m.PartyID, string(m.PartyKind), string(m.Direction), m.Amount, m.CreatedAt,
		}
	}

	if _, err := r.batch.CopyFromSlice(ctx, "reg_outstanding", movementColumns, rows); err != nil {
		return fmt.Errorf("copy movements: %w", err)
	}

	return nil
}

// DeleteMovementsByRecorder removes all movements a document posted.
func (r *OutstandingRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID) error {
	q := r.txManager.GetQuerier(ctx)

	_, err := q.Exec(ctx, `DELETE FROM reg_outstanding WHERE recorder_id = $1`, recorderID)
	if err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	return nil
}

// GetMovementsByRecorder retrieves all movements for a document.
func (r *OutstandingRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]outstanding.Movement, error) {
	q := r.txManager.GetQuerier(ctx)

	var movements []outstanding.Movement
	err := pgxscan.Select(ctx, q, &movements, `
		SELECT id, period, recorder_id, recorder_type,
		       party_id, party_kind, direction, amount, created_at
		FROM reg_outstanding
		WHERE recorder_id = $1
		ORDER BY period, created_at
	`, recorderID)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}

	return movements, nil
}

const signedSum = `COALESCE(SUM(CASE WHEN direction = 'debit' THEN amount ELSE -amount END), 0)`

// GetBalance returns the current balance for a party.
func (r *OutstandingRepo) GetBalance(ctx context.Context, partyID id.ID) (types.Money, error) {
	q := r.txManager.GetQuerier(ctx)

	var balance decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT `+signedSum+` FROM reg_outstanding WHERE party_id = $1`,
		partyID).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query balance: %w", err)
	}

	return balance, nil
}

// GetBalances returns non-zero balances for one party kind, largest
// first.
func (r *OutstandingRepo) GetBalances(ctx context.Context, kind outstanding.PartyKind, limit, offset int) ([]outstanding.Balance, error) {
	q := r.txManager.GetQuerier(ctx)

	var balances []outstanding.Balance
	err := pgxscan.Select(ctx, q, &balances, `
		SELECT party_id, party_kind, `+signedSum+` AS amount
		FROM reg_outstanding
		WHERE party_kind = $1
		GROUP BY party_id, party_kind
		HAVING `+signedSum+` <> 0
		ORDER BY amount DESC
		LIMIT $2 OFFSET $3
	`, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query balances: %w", err)
	}

	return balances, nil
}

// GetBalanceAtDate returns the party balance before the given date.
func (r *OutstandingRepo) GetBalanceAtDate(ctx context.Context, partyID id.ID, date time.Time) (types.Money, error) {
	q := r.txManager.GetQuerier(ctx)

	var balance decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT `+signedSum+` FROM reg_outstanding WHERE party_id = $1 AND period < $2`,
		partyID, date).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query balance at date: %w", err)
	}

	return balance, nil
}

// GetMovements returns movements for a party within [from, to).
func (r *OutstandingRepo) GetMovements(ctx context.Context, partyID id.ID, from, to time.Time) ([]outstanding.Movement, error) {
	q := r.txManager.GetQuerier(ctx)

	var movements []outstanding.Movement
	err := pgxscan.Select(ctx, q, &movements, `
		SELECT id, period, recorder_id, recorder_type,
		       party_id, party_kind, direction, amount, created_at
		FROM reg_outstanding
		WHERE party_id = $1 AND period >= $2 AND period < $3
		ORDER BY period, created_at
	`, partyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}

	return movements, nil
}
