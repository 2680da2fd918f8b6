package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidHolderName = errors.New("invalid holder name")
	ErrPasswordTooWeak   = errors.New("password does not meet requirements")
	ErrInvalidOverdraft  = errors.New("overdraft limit must not be negative")
)

// Validation constants
const (
	MaxHolderNameLength = 255
	MinHolderNameLength = 1
	MinPasswordLength   = 8
	MaxPasswordLength   = 128
)

// ValidateHolderName validates the account holder's name before it is
// encrypted and stored.
func ValidateHolderName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinHolderNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidHolderName)
	}

	if len(name) > MaxHolderNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidHolderName, MaxHolderNameLength)
	}

	return nil
}

// ValidatePassword validates password length bounds. Composition rules are
// left to the calling surface.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidateOverdraftLimit validates a configured overdraft limit.
func ValidateOverdraftLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return ErrInvalidOverdraft
	}

	return nil
}

// ValidateInitialBalance validates an opening balance.
func ValidateInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidAmount)
	}

	return nil
}
