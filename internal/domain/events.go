package domain

import "time"

// Event types
const (
	EventTypeAccountCreated    = "account.created"
	EventTypeTransferCompleted = "transfer.completed"
	EventTypeOtpIssued         = "otp.issued"
)

// Event is a notification handed to the delivery/publishing layer. The OTP
// event is how codes reach the external delivery channel; the core never
// logs or returns them.
type Event struct {
	ID         string
	Type       string
	OccurredAt time.Time
	Payload    map[string]any
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID string `json:"account_id"`
}

// TransferCompletedEvent payload
type TransferCompletedEvent struct {
	TransferID    string `json:"transfer_id"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// OtpIssuedEvent payload. Code is present so the delivery gateway can send
// it out of band; this payload must never be written to application logs.
type OtpIssuedEvent struct {
	ChallengeID string `json:"challenge_id"`
	AccountID   string `json:"account_id"`
	Code        string `json:"code"`
}
