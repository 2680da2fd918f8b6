package bank

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"securebank/internal/domain"
)

// AccountView is the read model handed to callers. The holder name is
// decrypted on demand; password hashes, salts and key material are never
// exposed.
type AccountView struct {
	ID             string
	Holder         string
	Balance        decimal.Decimal
	OverdraftLimit decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	LastActivityAt time.Time
	Transactions   []domain.Transaction
}

// viewOf builds an AccountView. Caller must hold the account's lock.
func (b *Bank) viewOf(acct *domain.Account) (*AccountView, error) {
	holder, err := b.secrets.Decrypt(acct.HolderCiphertext)
	if err != nil {
		return nil, fmt.Errorf("decrypt holder name: %w", err)
	}

	transactions := make([]domain.Transaction, len(acct.Transactions))
	copy(transactions, acct.Transactions)

	return &AccountView{
		ID:             acct.ID,
		Holder:         string(holder),
		Balance:        acct.Balance,
		OverdraftLimit: acct.OverdraftLimit,
		Active:         acct.Active,
		CreatedAt:      acct.CreatedAt,
		LastActivityAt: acct.LastActivityAt,
		Transactions:   transactions,
	}, nil
}

func toPayloadMap(payload any) map[string]any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}

	return m
}
