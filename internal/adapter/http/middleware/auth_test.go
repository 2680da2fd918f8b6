package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"securebank/internal/infrastructure/auth"
)

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	token, err := jwtManager.Generate("acc-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotAccountID string
	handler := AuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccountID, _ = AccountFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		header       string
		expectedCode int
	}{
		{name: "valid token", header: "Bearer " + token, expectedCode: http.StatusOK},
		{name: "missing header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", expectedCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAccountID = ""

			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedCode == http.StatusOK && gotAccountID != "acc-1" {
				t.Errorf("expected account id in context, got %q", gotAccountID)
			}
		})
	}
}
