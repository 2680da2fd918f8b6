package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"securebank/internal/adapter/http/dto"
	"securebank/internal/bank"
	"securebank/internal/domain"
)

type stubAccountService struct {
	createFn func(ctx context.Context, input bank.CreateAccountInput) (string, error)
	getFn    func(ctx context.Context, id string) (*bank.AccountView, error)
}

func (s *stubAccountService) CreateAccount(ctx context.Context, input bank.CreateAccountInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*bank.AccountView, error) {
	return s.getFn(ctx, id)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testView() *bank.AccountView {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	return &bank.AccountView{
		ID:             "acc-1",
		Holder:         "Alice Smith",
		Balance:        decimal.NewFromInt(1000),
		OverdraftLimit: decimal.NewFromInt(500),
		Active:         true,
		CreatedAt:      now,
		LastActivityAt: now,
		Transactions: []domain.Transaction{
			{
				ID:               "tx-1",
				Kind:             domain.TransactionDeposit,
				Amount:           decimal.NewFromInt(100),
				Timestamp:        now,
				ResultingBalance: decimal.NewFromInt(1000),
			},
		},
	}
}

func TestAccountHandler_Create(t *testing.T) {
	svc := &stubAccountService{
		createFn: func(_ context.Context, input bank.CreateAccountInput) (string, error) {
			if input.HolderName != "Alice Smith" {
				t.Errorf("expected holder name to pass through, got %q", input.HolderName)
			}
			return "acc-1", nil
		},
	}
	h := NewAccountHandler(svc)

	body := `{"holder_name":"Alice Smith","initial_balance":"1000","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.CreateAccountResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccountID != "acc-1" {
		t.Errorf("expected account id acc-1, got %q", resp.AccountID)
	}
}

func TestAccountHandler_Create_InvalidBody(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_ValidationError(t *testing.T) {
	svc := &stubAccountService{
		createFn: func(context.Context, bank.CreateAccountInput) (string, error) {
			return "", domain.ErrPasswordTooWeak
		},
	}
	h := NewAccountHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(`{"holder_name":"A","password":"x"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	svc := &stubAccountService{
		getFn: func(_ context.Context, id string) (*bank.AccountView, error) {
			if id != "acc-1" {
				t.Errorf("expected id acc-1, got %q", id)
			}
			return testView(), nil
		},
	}
	h := NewAccountHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1", nil), "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Holder != "Alice Smith" {
		t.Errorf("expected holder name in response, got %q", resp.Holder)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected balance 1000, got %s", resp.Balance)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	svc := &stubAccountService{
		getFn: func(context.Context, string) (*bank.AccountView, error) {
			return nil, domain.ErrUnknownAccount
		},
	}
	h := NewAccountHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/accounts/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_ListTransactions(t *testing.T) {
	svc := &stubAccountService{
		getFn: func(context.Context, string) (*bank.AccountView, error) {
			return testView(), nil
		},
	}
	h := NewAccountHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1/transactions", nil), "id", "acc-1")
	rec := httptest.NewRecorder()

	h.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ListTransactionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccountID != "acc-1" {
		t.Errorf("expected account id acc-1, got %q", resp.AccountID)
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(resp.Transactions))
	}
	if resp.Transactions[0].Kind != string(domain.TransactionDeposit) {
		t.Errorf("expected DEPOSIT, got %q", resp.Transactions[0].Kind)
	}
}
