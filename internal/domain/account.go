package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds one owner's balance, credentials and transaction history.
// The holder name is stored only as authenticated ciphertext; the password
// only as a salted PBKDF2 hash. Deposit and Withdraw are the only balance
// mutators and are not safe for concurrent use without the caller holding
// the account's lock.
type Account struct {
	ID               string
	HolderCiphertext []byte
	PasswordHash     []byte
	PasswordSalt     []byte
	Balance          decimal.Decimal
	OverdraftLimit   decimal.Decimal
	Active           bool
	CreatedAt        time.Time
	LastActivityAt   time.Time
	Transactions     []Transaction
}

// Deposit increases the balance and appends a DEPOSIT transaction with the
// given id. The transaction is returned for callers that publish events.
func (a *Account) Deposit(txID string, amount decimal.Decimal, now time.Time) (*Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)
	tx := a.appendTransaction(txID, TransactionDeposit, amount, now)
	a.LastActivityAt = now

	return tx, nil
}

// Withdraw decreases the balance and appends a WITHDRAWAL transaction. The
// balance may go below zero up to the overdraft limit.
func (a *Account) Withdraw(txID string, amount decimal.Decimal, now time.Time) (*Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if a.Balance.Add(a.OverdraftLimit).LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	tx := a.appendTransaction(txID, TransactionWithdrawal, amount, now)
	a.LastActivityAt = now

	return tx, nil
}

// CanWithdraw reports whether a withdrawal of amount would succeed.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero) && !a.Balance.Add(a.OverdraftLimit).LessThan(amount)
}

// WithdrawnOn sums the WITHDRAWAL amounts logged on the UTC day containing
// at. The log is ordered, so the scan walks back from the tail and stops at
// the first entry before the start of the day.
func (a *Account) WithdrawnOn(at time.Time) decimal.Decimal {
	dayStart := at.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	total := decimal.Zero
	for i := len(a.Transactions) - 1; i >= 0; i-- {
		tx := a.Transactions[i]
		if tx.Timestamp.Before(dayStart) {
			break
		}
		if tx.Kind == TransactionWithdrawal && tx.Timestamp.Before(dayEnd) {
			total = total.Add(tx.Amount)
		}
	}

	return total
}

// RefreshActivity deactivates the account once it has seen no transaction
// for longer than window. Evaluated lazily on access.
func (a *Account) RefreshActivity(now time.Time, window time.Duration) {
	if a.Active && now.Sub(a.LastActivityAt) > window {
		a.Active = false
	}
}

func (a *Account) appendTransaction(txID string, kind TransactionKind, amount decimal.Decimal, now time.Time) *Transaction {
	a.Transactions = append(a.Transactions, Transaction{
		ID:               txID,
		Kind:             kind,
		Amount:           amount,
		Timestamp:        now,
		ResultingBalance: a.Balance,
	})

	return &a.Transactions[len(a.Transactions)-1]
}
