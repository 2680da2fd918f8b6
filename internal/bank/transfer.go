package bank

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"securebank/internal/domain"
	"securebank/internal/infrastructure/metrics"
)

// TransferInput represents a transfer request. ChallengeID and OTPCode
// reference a challenge previously issued with IssueOTP; obtaining the code
// from the user is the caller's business and happens before any account
// lock is taken.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Password      string
	ChallengeID   string
	OTPCode       string
}

// Transfer moves funds between two accounts. The debit and credit are
// applied atomically under a lock scoped to the account pair; every failure
// leaves both balances untouched.
func (b *Bank) Transfer(ctx context.Context, input TransferInput) error {
	err := b.transfer(ctx, input)
	if err != nil {
		metrics.TransferErrors.WithLabelValues(errorLabel(err)).Inc()
		b.logger.Warn().
			Err(err).
			Str("from_account_id", input.FromAccountID).
			Str("to_account_id", input.ToAccountID).
			Msg("transfer rejected")

		return err
	}

	metrics.TransfersCompleted.Inc()

	return nil
}

func (b *Bank) transfer(ctx context.Context, input TransferInput) error {
	if input.FromAccountID == input.ToAccountID {
		return domain.ErrSameAccount
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	// 1. Resolve both accounts, recompute inactivity lazily.
	from, ok := b.lookup(input.FromAccountID)
	if !ok {
		return domain.ErrUnknownAccount
	}

	to, ok := b.lookup(input.ToAccountID)
	if !ok {
		return domain.ErrUnknownAccount
	}

	now := time.Now().UTC()
	if !b.refreshActive(from, now) || !b.refreshActive(to, now) {
		return domain.ErrInactiveAccount
	}

	// 2.-3. Authenticate and verify the OTP. Long-latency and interactive
	// work is behind us once these pass; no registry or account lock is
	// held up to this point.
	if !b.Authenticate(ctx, input.FromAccountID, input.Password) {
		return domain.ErrAuthenticationFailed
	}

	if !b.consumeOTP(input.ChallengeID, input.OTPCode, input.FromAccountID) {
		return domain.ErrMFAFailed
	}

	// 4.-5. Policy checks. Rechecked below once the pair lock is held,
	// because concurrent transfers may have moved the balance or the daily
	// total in between.
	if input.Amount.GreaterThan(b.cfg.SingleTransferLimit) {
		return domain.ErrLimitExceeded
	}

	if err := b.checkDailyLimit(from, input.Amount, now); err != nil {
		return err
	}

	// The caller may cancel freely up to here; past this point the
	// debit/credit pair is not interruptible.
	if err := ctx.Err(); err != nil {
		return err
	}

	// 6. Atomic debit/credit under the pair lock, ordered by account id so
	// two transfers over the same pair cannot deadlock.
	unlock := b.lockPair(from, to)
	defer unlock()

	now = time.Now().UTC()
	from.acct.RefreshActivity(now, b.cfg.InactivityWindow)
	to.acct.RefreshActivity(now, b.cfg.InactivityWindow)
	if !from.acct.Active || !to.acct.Active {
		return domain.ErrInactiveAccount
	}

	if from.acct.WithdrawnOn(now).Add(input.Amount).GreaterThan(b.cfg.DailyTransferLimit) {
		return domain.ErrDailyLimitExceeded
	}

	if _, err := from.acct.Withdraw(b.idGen.Generate(), input.Amount, now); err != nil {
		return err
	}

	if _, err := to.acct.Deposit(b.idGen.Generate(), input.Amount, now); err != nil {
		// Credit the funds back so the debit is not observable. A failing
		// compensation would mean funds vanished, which is a programmer
		// error, not a recoverable condition.
		if _, compErr := from.acct.Deposit(b.idGen.Generate(), input.Amount, now); compErr != nil {
			panic("bank: compensating deposit failed after aborted transfer: " + compErr.Error())
		}

		return err
	}

	transferID := b.idGen.Generate()
	b.logger.Info().
		Str("transfer_id", transferID).
		Str("from_account_id", input.FromAccountID).
		Str("to_account_id", input.ToAccountID).
		Msg("transfer completed")
	b.publish(ctx, domain.EventTypeTransferCompleted, domain.TransferCompletedEvent{
		TransferID:    transferID,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount.String(),
	})

	return nil
}

// refreshActive recomputes the lazy inactivity flag under the account's
// lock and reports whether the account is still active.
func (b *Bank) refreshActive(entry *accountEntry, now time.Time) bool {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.acct.RefreshActivity(now, b.cfg.InactivityWindow)

	return entry.acct.Active
}

func (b *Bank) checkDailyLimit(entry *accountEntry, amount decimal.Decimal, now time.Time) error {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.acct.WithdrawnOn(now).Add(amount).GreaterThan(b.cfg.DailyTransferLimit) {
		return domain.ErrDailyLimitExceeded
	}

	return nil
}

// lockPair locks both accounts in ascending id order. Lock acquisition in a
// fixed global order prevents deadlock when two transfers touch the same
// pair in opposite directions.
func (b *Bank) lockPair(a, c *accountEntry) func() {
	first, second := a, c
	if second.acct.ID < first.acct.ID {
		first, second = second, first
	}

	first.mu.Lock()
	second.mu.Lock()

	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrUnknownAccount):
		return "unknown_account"
	case errors.Is(err, domain.ErrInactiveAccount):
		return "inactive_account"
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return "authentication_failed"
	case errors.Is(err, domain.ErrMFAFailed):
		return "mfa_failed"
	case errors.Is(err, domain.ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, domain.ErrDailyLimitExceeded):
		return "daily_limit_exceeded"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "internal"
	}
}
