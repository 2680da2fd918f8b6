package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"securebank/internal/adapter/http/dto"
	"securebank/internal/infrastructure/auth"
)

type stubAuthenticator struct {
	authenticateFn func(ctx context.Context, id, password string) bool
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, id, password string) bool {
	return s.authenticateFn(ctx, id, password)
}

func TestAuthHandler_Login(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	svc := &stubAuthenticator{
		authenticateFn: func(_ context.Context, id, password string) bool {
			return id == "acc-1" && password == "correct-horse"
		},
	}
	h := NewAuthHandler(svc, jwtManager)

	body := `{"account_id":"acc-1","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := jwtManager.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if claims.AccountID != "acc-1" {
		t.Errorf("expected token bound to acc-1, got %q", claims.AccountID)
	}
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	svc := &stubAuthenticator{
		authenticateFn: func(context.Context, string, string) bool {
			return false
		},
	}
	h := NewAuthHandler(svc, jwtManager)

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: `{"account_id":"acc-1","password":"wrong"}`},
		{name: "unknown account", body: `{"account_id":"nope","password":"correct-horse"}`},
	}

	var responses []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			responses = append(responses, rec.Body.String())
		})
	}

	if len(responses) == 2 && responses[0] != responses[1] {
		t.Errorf("unknown account and wrong password must be indistinguishable")
	}
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthenticator{}, auth.NewJWTManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
