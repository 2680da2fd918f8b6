package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"/health", "/health"},
		{"/api/v1/accounts", "/api/v1/accounts"},
		{"/api/v1/accounts/01ABC", "/api/v1/accounts/:id"},
		{"/api/v1/accounts/01ABC/otp", "/api/v1/accounts/:id/otp"},
		{"/api/v1/accounts/01ABC/transactions", "/api/v1/accounts/:id/transactions"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.out {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
