// Package bank implements the ledger: the account registry, the policy and
// concurrency rules that govern transfers, and the OTP second factor.
package bank

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"securebank/internal/domain"
	"securebank/internal/infrastructure/metrics"
	"securebank/internal/secrets"
)

// Config holds the bank's policy knobs.
type Config struct {
	Name                  string
	SingleTransferLimit   decimal.Decimal
	DailyTransferLimit    decimal.Decimal
	DefaultOverdraftLimit decimal.Decimal
	InactivityWindow      time.Duration
	OTPTTL                time.Duration
}

// accountEntry pairs an account with its mutex. Entries are never removed
// from the registry, so an id can never be reassigned.
type accountEntry struct {
	mu   sync.Mutex
	acct *domain.Account
}

// Bank is the registry of accounts plus the transfer protocol. One instance
// is shared by all concurrent callers.
type Bank struct {
	cfg       Config
	secrets   *secrets.Manager
	idGen     IDGenerator
	publisher Publisher
	logger    zerolog.Logger

	mu       sync.RWMutex
	accounts map[string]*accountEntry

	otpMu sync.Mutex
	otps  map[string]*domain.OtpChallenge

	// Decoy credentials keep authentication timing uniform for unknown ids.
	decoyHash []byte
	decoySalt []byte
}

// New creates a Bank.
func New(cfg Config, sm *secrets.Manager, idGen IDGenerator, publisher Publisher, logger zerolog.Logger) (*Bank, error) {
	decoyPassword := make([]byte, 24)
	if _, err := io.ReadFull(rand.Reader, decoyPassword); err != nil {
		return nil, fmt.Errorf("generate decoy credentials: %w", err)
	}

	decoyHash, decoySalt, err := sm.HashPassword(string(decoyPassword), nil)
	if err != nil {
		return nil, fmt.Errorf("hash decoy credentials: %w", err)
	}

	return &Bank{
		cfg:       cfg,
		secrets:   sm,
		idGen:     idGen,
		publisher: publisher,
		logger:    logger,
		accounts:  make(map[string]*accountEntry),
		otps:      make(map[string]*domain.OtpChallenge),
		decoyHash: decoyHash,
		decoySalt: decoySalt,
	}, nil
}

// Name returns the configured display name.
func (b *Bank) Name() string {
	return b.cfg.Name
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	HolderName     string
	InitialBalance decimal.Decimal
	Password       string
	OverdraftLimit *decimal.Decimal
}

// CreateAccount encrypts the holder name, hashes the password and inserts a
// new active account. It returns the new account id.
func (b *Bank) CreateAccount(ctx context.Context, input CreateAccountInput) (string, error) {
	if err := domain.ValidateHolderName(input.HolderName); err != nil {
		return "", err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return "", err
	}

	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return "", err
	}

	overdraft := b.cfg.DefaultOverdraftLimit
	if input.OverdraftLimit != nil {
		overdraft = *input.OverdraftLimit
	}

	if err := domain.ValidateOverdraftLimit(overdraft); err != nil {
		return "", err
	}

	holderCiphertext, err := b.secrets.Encrypt([]byte(input.HolderName))
	if err != nil {
		return "", fmt.Errorf("encrypt holder name: %w", err)
	}

	passwordHash, passwordSalt, err := b.secrets.HashPassword(input.Password, nil)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	acct := &domain.Account{
		ID:               b.idGen.Generate(),
		HolderCiphertext: holderCiphertext,
		PasswordHash:     passwordHash,
		PasswordSalt:     passwordSalt,
		Balance:          input.InitialBalance,
		OverdraftLimit:   overdraft,
		Active:           true,
		CreatedAt:        now,
		LastActivityAt:   now,
	}

	b.mu.Lock()
	b.accounts[acct.ID] = &accountEntry{acct: acct}
	b.mu.Unlock()

	metrics.AccountsCreated.Inc()
	b.logger.Info().Str("account_id", acct.ID).Msg("account created")
	b.publish(ctx, domain.EventTypeAccountCreated, domain.AccountCreatedEvent{AccountID: acct.ID})

	return acct.ID, nil
}

// GetAccount resolves an account and returns a view of it. The inactivity
// flag is recomputed lazily before the view is built.
func (b *Bank) GetAccount(ctx context.Context, id string) (*AccountView, error) {
	entry, ok := b.lookup(id)
	if !ok {
		return nil, domain.ErrUnknownAccount
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.acct.RefreshActivity(time.Now().UTC(), b.cfg.InactivityWindow)

	return b.viewOf(entry.acct)
}

// Authenticate verifies the password of the account's owner. Unknown ids
// take the same slow path as wrong passwords so the caller cannot tell the
// two apart, by timing or by result.
func (b *Bank) Authenticate(ctx context.Context, id, password string) bool {
	entry, ok := b.lookup(id)
	if !ok {
		b.secrets.VerifyPassword(password, b.decoyHash, b.decoySalt)
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return false
	}

	// Credential fields are written once before registry insertion, so no
	// account lock is needed here.
	ok = b.secrets.VerifyPassword(password, entry.acct.PasswordHash, entry.acct.PasswordSalt)
	if ok {
		metrics.AuthAttempts.WithLabelValues("success").Inc()
	} else {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
	}

	return ok
}

func (b *Bank) lookup(id string) (*accountEntry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, ok := b.accounts[id]

	return entry, ok
}

func (b *Bank) publish(ctx context.Context, eventType string, payload any) {
	if b.publisher == nil {
		return
	}

	event := domain.Event{
		ID:         b.idGen.Generate(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    toPayloadMap(payload),
	}

	if err := b.publisher.Publish(ctx, event); err != nil {
		b.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}
