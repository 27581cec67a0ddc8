package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is the persistence shape of a domain.Movement. The account
// identity is denormalized onto each row so movements remain valid history
// independent of later account mutation.
type Movement struct {
	MovementID    string          `db:"movement_id"`
	RequestID     string          `db:"request_id"`
	Channel       string          `db:"channel"`
	AccountNumber string          `db:"account_number"`
	ProductNumber string          `db:"product_number"`
	CurrencyCode  string          `db:"currency_code"`
	Amount        decimal.Decimal `db:"amount"`
	Direction     string          `db:"direction"`
	CreatedAt     time.Time       `db:"created_at"`
}
