package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

// OtpChallenge is a short-lived, single-use numeric challenge bound to one
// account. The code itself is handed to an out-of-band delivery channel;
// callers only ever see the challenge id.
type OtpChallenge struct {
	ID        string
	AccountID string
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Consumed  bool
}

var otpMax = big.NewInt(1000000)

// NewOtpChallenge issues a challenge with a uniformly random 6-digit code.
func NewOtpChallenge(id, accountID string, now time.Time, ttl time.Duration) (*OtpChallenge, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return nil, fmt.Errorf("generate otp code: %w", err)
	}

	return &OtpChallenge{
		ID:        id,
		AccountID: accountID,
		Code:      fmt.Sprintf("%06d", n.Int64()),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		Consumed:  false,
	}, nil
}

// Verify checks the user-supplied code. The challenge is consumed by the
// first verification attempt regardless of its outcome.
func (c *OtpChallenge) Verify(input string, now time.Time) bool {
	if c.Consumed {
		return false
	}
	c.Consumed = true

	if now.After(c.ExpiresAt) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(c.Code), []byte(input)) == 1
}
