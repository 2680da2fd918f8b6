package dto

import (
	"github.com/shopspring/decimal"

	"securebank/internal/bank"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	HolderName     string           `json:"holder_name"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	Password       string           `json:"password"`
	OverdraftLimit *decimal.Decimal `json:"overdraft_limit,omitempty"`
}

// ToBankInput converts to bank input.
func (r *CreateAccountRequest) ToBankInput() bank.CreateAccountInput {
	return bank.CreateAccountInput{
		HolderName:     r.HolderName,
		InitialBalance: r.InitialBalance,
		Password:       r.Password,
		OverdraftLimit: r.OverdraftLimit,
	}
}

// LoginRequest represents a password authentication request.
type LoginRequest struct {
	AccountID string `json:"account_id"`
	Password  string `json:"password"`
}

// VerifyOTPRequest represents an OTP verification request.
type VerifyOTPRequest struct {
	ChallengeID string `json:"challenge_id"`
	Code        string `json:"code"`
}

// CreateTransferRequest represents a transfer request. The challenge must
// have been issued beforehand; its code reaches the user out of band.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Password      string          `json:"password"`
	ChallengeID   string          `json:"challenge_id"`
	OTPCode       string          `json:"otp_code"`
}

// ToBankInput converts to bank input.
func (r *CreateTransferRequest) ToBankInput() bank.TransferInput {
	return bank.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Password:      r.Password,
		ChallengeID:   r.ChallengeID,
		OTPCode:       r.OTPCode,
	}
}
