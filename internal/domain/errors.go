package domain

import "errors"

var (
	// Account errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds including overdraft")
	ErrUnknownAccount    = errors.New("unknown account")
	ErrInactiveAccount   = errors.New("account is inactive")

	// Transfer errors
	ErrSameAccount          = errors.New("cannot transfer to same account")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrMFAFailed            = errors.New("one-time passcode verification failed")
	ErrLimitExceeded        = errors.New("amount exceeds single transaction limit")
	ErrDailyLimitExceeded   = errors.New("daily withdrawal limit exceeded")

	// Secrets errors
	ErrIntegrity = errors.New("ciphertext integrity check failed")
)
