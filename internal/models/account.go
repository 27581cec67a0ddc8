package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the persistence shape of a domain.Account. The composite key
// (account_number, product_number, currency_code) is unique; version is the
// optimistic concurrency token checked by the conditional commit.
type Account struct {
	AccountNumber string          `db:"account_number"`
	ProductNumber string          `db:"product_number"`
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"`
	City          string          `db:"city"`
	State         string          `db:"state"`
	Country       string          `db:"country"`
	Version       int64           `db:"version"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}
