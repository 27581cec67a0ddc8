package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKey is the composite identity of an account. Exactly one account
// exists per key; movements reference it by value, not by a surrogate ID.
type AccountKey struct {
	AccountNumber string `json:"accountNumber"`
	ProductNumber string `json:"productNumber"`
	CurrencyCode  string `json:"currencyCode"`
}

// IsComplete reports whether all identity fields are present.
func (k AccountKey) IsComplete() bool {
	return k.AccountNumber != "" && k.ProductNumber != "" && k.CurrencyCode != ""
}

// Address holds the postal address attached to an account.
type Address struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Account is the mutable balance-holding record. Balance and Version are
// written only by the ledger service; Version increases by one per committed
// movement and drives the optimistic concurrency check at commit time.
type Account struct {
	AccountKey
	Balance       decimal.Decimal `json:"balance"`
	Address       Address         `json:"address"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// NewAccount synthesizes an account at the given opening balance and version 0.
// It is not persisted; the first committed movement writes it at version 1.
func NewAccount(key AccountKey, opening decimal.Decimal, addr Address, now time.Time) Account {
	return Account{
		AccountKey:    key,
		Balance:       opening,
		Address:       addr,
		Version:       0,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}
