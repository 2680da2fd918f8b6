package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"securebank/internal/bank"
	"securebank/internal/domain"
)

// AccountResponse represents an account in API responses. Credential and
// key material never appear here.
type AccountResponse struct {
	ID             string          `json:"id"`
	Holder         string          `json:"holder"`
	Balance        decimal.Decimal `json:"balance"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	LastActivityAt time.Time       `json:"last_activity_at"`
}

// AccountFromView converts a bank view to a response.
func AccountFromView(v *bank.AccountView) *AccountResponse {
	return &AccountResponse{
		ID:             v.ID,
		Holder:         v.Holder,
		Balance:        v.Balance,
		OverdraftLimit: v.OverdraftLimit,
		Active:         v.Active,
		CreatedAt:      v.CreatedAt,
		LastActivityAt: v.LastActivityAt,
	}
}

// TransactionResponse represents a transaction-log entry.
type TransactionResponse struct {
	ID               string          `json:"id"`
	Kind             string          `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	Timestamp        time.Time       `json:"timestamp"`
	ResultingBalance decimal.Decimal `json:"resulting_balance"`
}

// TransactionsFromDomain converts log entries to responses.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, tx := range txs {
		result[i] = &TransactionResponse{
			ID:               tx.ID,
			Kind:             string(tx.Kind),
			Amount:           tx.Amount,
			Timestamp:        tx.Timestamp,
			ResultingBalance: tx.ResultingBalance,
		}
	}

	return result
}

// ListTransactionsResponse wraps a transaction log.
type ListTransactionsResponse struct {
	AccountID    string                 `json:"account_id"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// CreateAccountResponse carries the new account id.
type CreateAccountResponse struct {
	AccountID string `json:"account_id"`
}

// LoginResponse carries a session token.
type LoginResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
}

// ChallengeResponse carries an OTP challenge handle. The code itself is
// delivered out of band.
type ChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
}

// VerifyOTPResponse carries an OTP verification outcome.
type VerifyOTPResponse struct {
	Valid bool `json:"valid"`
}

// TransferResponse acknowledges a completed transfer.
type TransferResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
