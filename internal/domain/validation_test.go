package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateHolderName(t *testing.T) {
	tests := []struct {
		name        string
		holder      string
		expectError error
	}{
		{name: "valid", holder: "Alice Smith"},
		{name: "single character", holder: "A"},
		{name: "max length", holder: strings.Repeat("a", 255)},
		{name: "empty", holder: "", expectError: ErrInvalidHolderName},
		{name: "whitespace only", holder: "   ", expectError: ErrInvalidHolderName},
		{name: "too long", holder: strings.Repeat("a", 256), expectError: ErrInvalidHolderName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHolderName(tt.holder)
			if !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError error
	}{
		{name: "valid", password: "correct-horse"},
		{name: "minimum length", password: "12345678"},
		{name: "too short", password: "1234567", expectError: ErrPasswordTooWeak},
		{name: "empty", password: "", expectError: ErrPasswordTooWeak},
		{name: "too long", password: strings.Repeat("x", 129), expectError: ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestValidateOverdraftLimit(t *testing.T) {
	if err := ValidateOverdraftLimit(decimal.NewFromInt(500)); err != nil {
		t.Errorf("positive limit should be valid: %v", err)
	}
	if err := ValidateOverdraftLimit(decimal.Zero); err != nil {
		t.Errorf("zero limit should be valid: %v", err)
	}
	if err := ValidateOverdraftLimit(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidOverdraft) {
		t.Errorf("expected ErrInvalidOverdraft, got %v", err)
	}
}

func TestValidateInitialBalance(t *testing.T) {
	if err := ValidateInitialBalance(decimal.NewFromInt(100)); err != nil {
		t.Errorf("positive balance should be valid: %v", err)
	}
	if err := ValidateInitialBalance(decimal.Zero); err != nil {
		t.Errorf("zero balance should be valid: %v", err)
	}
	if err := ValidateInitialBalance(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}
