package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes balance-affecting events.
type TransactionKind string

const (
	TransactionDeposit    TransactionKind = "DEPOSIT"
	TransactionWithdrawal TransactionKind = "WITHDRAWAL"
)

// Transaction is one immutable entry in an account's log. Amount is always
// positive; the kind carries the direction. ResultingBalance is the account
// balance immediately after the entry was applied.
type Transaction struct {
	ID               string
	Kind             TransactionKind
	Amount           decimal.Decimal
	Timestamp        time.Time
	ResultingBalance decimal.Decimal
}
