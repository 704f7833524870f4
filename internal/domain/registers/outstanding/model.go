// Package outstanding provides the party outstanding-balance register.
//
// Every issued sales document posts a receivable debit for its balance
// due; payments and applied credits post the matching credit. The
// register is append-only: cancelling a document removes its movements
// by recorder instead of posting compensating rows.
package outstanding

import (
	"time"

	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
)

// PartyKind distinguishes receivable from payable balances.
type PartyKind string

const (
	KindCustomer PartyKind = "customer"
	KindVendor   PartyKind = "vendor"
)

// Direction is the movement sign. Debit increases what the party owes
// (or what we owe the vendor), credit decreases it.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Movement is one row of the outstanding register.
type Movement struct {
	ID id.ID `db:"id" json:"id"`

	// Period is the business date of the movement, taken from the
	// recording document.
	Period time.Time `db:"period" json:"period"`

	// RecorderID is the document that produced this movement. All of a
	// document's movements are removed together on cancellation.
	RecorderID   id.ID  `db:"recorder_id" json:"recorderId"`
	RecorderType string `db:"recorder_type" json:"recorderType"`

	PartyID   id.ID     `db:"party_id" json:"partyId"`
	PartyKind PartyKind `db:"party_kind" json:"partyKind"`

	Direction Direction   `db:"direction" json:"direction"`
	Amount    types.Money `db:"amount" json:"amount"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Signed returns the amount with the debit/credit sign applied.
func (m Movement) Signed() types.Money {
	if m.Direction == Credit {
		return m.Amount.Neg()
	}
	return m.Amount
}

// Balance is the current outstanding amount for one party.
type Balance struct {
	PartyID   id.ID       `db:"party_id" json:"partyId"`
	PartyKind PartyKind   `db:"party_kind" json:"partyKind"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// StatementLine is a movement with the running balance after it.
type StatementLine struct {
	Movement
	RunningBalance types.Money `json:"runningBalance"`
}

// Statement is the party ledger for a period.
type Statement struct {
	PartyID        id.ID           `json:"partyId"`
	FromDate       time.Time       `json:"fromDate"`
	ToDate         time.Time       `json:"toDate"`
	OpeningBalance types.Money     `json:"openingBalance"`
	Lines          []StatementLine `json:"lines"`
	ClosingBalance types.Money     `json:"closingBalance"`
}
