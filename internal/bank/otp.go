package bank

import (
	"context"
	"time"

	"securebank/internal/domain"
	"securebank/internal/infrastructure/metrics"
)

// IssueOTP creates a single-use challenge for the account and hands the
// code to the publisher for out-of-band delivery. Only the challenge handle
// is returned to the caller.
func (b *Bank) IssueOTP(ctx context.Context, accountID string) (string, error) {
	if _, ok := b.lookup(accountID); !ok {
		return "", domain.ErrUnknownAccount
	}

	challenge, err := domain.NewOtpChallenge(b.idGen.Generate(), accountID, time.Now().UTC(), b.cfg.OTPTTL)
	if err != nil {
		return "", err
	}

	b.otpMu.Lock()
	b.otps[challenge.ID] = challenge
	b.otpMu.Unlock()

	metrics.OTPIssued.Inc()
	b.logger.Info().Str("account_id", accountID).Str("challenge_id", challenge.ID).Msg("otp challenge issued")
	b.publish(ctx, domain.EventTypeOtpIssued, domain.OtpIssuedEvent{
		ChallengeID: challenge.ID,
		AccountID:   accountID,
		Code:        challenge.Code,
	})

	return challenge.ID, nil
}

// VerifyOTP checks a user-supplied code against a pending challenge. The
// challenge is discarded after the first attempt, pass or fail.
func (b *Bank) VerifyOTP(ctx context.Context, challengeID, input string) bool {
	return b.consumeOTP(challengeID, input, "")
}

// consumeOTP removes the challenge from the pending store and verifies it.
// When accountID is non-empty the challenge must also be bound to that
// account.
func (b *Bank) consumeOTP(challengeID, input, accountID string) bool {
	b.otpMu.Lock()
	challenge, ok := b.otps[challengeID]
	if ok {
		delete(b.otps, challengeID)
	}
	b.otpMu.Unlock()

	if !ok {
		metrics.OTPVerifications.WithLabelValues("failure").Inc()
		return false
	}

	if accountID != "" && challenge.AccountID != accountID {
		metrics.OTPVerifications.WithLabelValues("failure").Inc()
		return false
	}

	valid := challenge.Verify(input, time.Now().UTC())
	if valid {
		metrics.OTPVerifications.WithLabelValues("success").Inc()
	} else {
		metrics.OTPVerifications.WithLabelValues("failure").Inc()
	}

	return valid
}
