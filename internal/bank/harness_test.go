package bank_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"securebank/internal/bank"
	"securebank/internal/domain"
	"securebank/internal/secrets"
)

const testPassword = "correct-horse"

// captureSink records published events so tests can harvest OTP codes the
// way a delivery gateway would.
type captureSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (s *captureSink) Publish(_ context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)

	return nil
}

func (s *captureSink) all() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Event, len(s.events))
	copy(out, s.events)

	return out
}

// otpCode returns the delivered code for a challenge id.
func (s *captureSink) otpCode(t *testing.T, challengeID string) string {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range s.events {
		if event.Type != domain.EventTypeOtpIssued {
			continue
		}
		if event.Payload["challenge_id"] != challengeID {
			continue
		}

		code, ok := event.Payload["code"].(string)
		require.True(t, ok, "otp event payload has no code")

		return code
	}

	t.Fatalf("no otp event for challenge %s", challengeID)

	return ""
}

func defaultConfig() bank.Config {
	return bank.Config{
		Name:                  "Test Bank",
		SingleTransferLimit:   decimal.NewFromInt(5000),
		DailyTransferLimit:    decimal.NewFromInt(10000),
		DefaultOverdraftLimit: decimal.NewFromInt(500),
		InactivityWindow:      90 * 24 * time.Hour,
		OTPTTL:                3 * time.Minute,
	}
}

func newTestBank(t *testing.T, cfg bank.Config) (*bank.Bank, *captureSink) {
	t.Helper()

	sm, err := secrets.NewManager(bytes.Repeat([]byte{0x42}, secrets.KeySize), zerolog.Nop())
	require.NoError(t, err)

	sink := &captureSink{}
	b, err := bank.New(cfg, sm, bank.NewULIDGenerator(), sink, zerolog.Nop())
	require.NoError(t, err)

	return b, sink
}

func createAccount(t *testing.T, b *bank.Bank, holder string, balance int64) string {
	t.Helper()

	id, err := b.CreateAccount(context.Background(), bank.CreateAccountInput{
		HolderName:     holder,
		InitialBalance: decimal.NewFromInt(balance),
		Password:       testPassword,
	})
	require.NoError(t, err)

	return id
}

// issueOTP issues a challenge and harvests the delivered code.
func issueOTP(t *testing.T, b *bank.Bank, sink *captureSink, accountID string) (challengeID, code string) {
	t.Helper()

	challengeID, err := b.IssueOTP(context.Background(), accountID)
	require.NoError(t, err)

	return challengeID, sink.otpCode(t, challengeID)
}

// transfer runs the full protocol with a fresh OTP challenge.
func transfer(t *testing.T, b *bank.Bank, sink *captureSink, from, to string, amount int64) error {
	t.Helper()

	challengeID, code := issueOTP(t, b, sink, from)

	return b.Transfer(context.Background(), bank.TransferInput{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        decimal.NewFromInt(amount),
		Password:      testPassword,
		ChallengeID:   challengeID,
		OTPCode:       code,
	})
}

func balanceOf(t *testing.T, b *bank.Bank, id string) decimal.Decimal {
	t.Helper()

	view, err := b.GetAccount(context.Background(), id)
	require.NoError(t, err)

	return view.Balance
}
