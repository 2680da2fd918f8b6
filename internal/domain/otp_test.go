package domain

import (
	"testing"
	"time"
)

func TestNewOtpChallenge(t *testing.T) {
	now := time.Now().UTC()

	ch, err := NewOtpChallenge("ch-1", "acc-1", now, 3*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ch.Code) != 6 {
		t.Errorf("expected a 6-digit code, got %q", ch.Code)
	}
	for _, r := range ch.Code {
		if r < '0' || r > '9' {
			t.Errorf("code contains non-digit character: %q", ch.Code)
		}
	}

	if !ch.ExpiresAt.Equal(now.Add(3 * time.Minute)) {
		t.Errorf("expected expiry at issue time plus ttl")
	}
	if ch.Consumed {
		t.Errorf("fresh challenge must not be consumed")
	}
}

func TestOtpChallenge_Verify(t *testing.T) {
	now := time.Now().UTC()

	newChallenge := func(t *testing.T) *OtpChallenge {
		t.Helper()
		ch, err := NewOtpChallenge("ch-1", "acc-1", now, 3*time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		return ch
	}

	t.Run("correct code", func(t *testing.T) {
		ch := newChallenge(t)
		if !ch.Verify(ch.Code, now) {
			t.Fatalf("expected verification to succeed")
		}
		if !ch.Consumed {
			t.Errorf("verified challenge must be consumed")
		}
	})

	t.Run("wrong code", func(t *testing.T) {
		ch := newChallenge(t)
		if ch.Verify("000000", now) && ch.Code != "000000" {
			t.Fatalf("expected verification to fail")
		}
		if !ch.Consumed {
			t.Errorf("failed attempt must still consume the challenge")
		}
	})

	t.Run("wrong code consumes the challenge", func(t *testing.T) {
		ch := newChallenge(t)
		wrong := "000000"
		if ch.Code == wrong {
			wrong = "000001"
		}
		_ = ch.Verify(wrong, now)
		if ch.Verify(ch.Code, now) {
			t.Fatalf("a challenge is single use even after a failed attempt")
		}
	})

	t.Run("expired", func(t *testing.T) {
		ch := newChallenge(t)
		if ch.Verify(ch.Code, now.Add(4*time.Minute)) {
			t.Fatalf("expected verification of an expired challenge to fail")
		}
	})

	t.Run("already consumed", func(t *testing.T) {
		ch := newChallenge(t)
		if !ch.Verify(ch.Code, now) {
			t.Fatal("first verification should succeed")
		}
		if ch.Verify(ch.Code, now) {
			t.Fatalf("expected reuse to fail")
		}
	})
}

func TestNewOtpChallenge_CodesVary(t *testing.T) {
	now := time.Now().UTC()
	seen := make(map[string]bool)

	for i := 0; i < 32; i++ {
		ch, err := NewOtpChallenge("ch", "acc", now, time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		seen[ch.Code] = true
	}

	if len(seen) < 2 {
		t.Errorf("expected generated codes to vary, got %d distinct codes", len(seen))
	}
}
