package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nsubra/account-ledger/internal/apperrors"
)

// Direction indicates whether a movement credits or debits the account.
type Direction string

const (
	Credit Direction = "CREDIT"
	Debit  Direction = "DEBIT"
)

// ParseDirection normalizes a direction token. It accepts the long forms and
// the single-letter wire forms ("C"/"D"), case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CREDIT", "C":
		return Credit, nil
	case "DEBIT", "D":
		return Debit, nil
	default:
		return "", fmt.Errorf("%w: unrecognized direction %q", apperrors.ErrValidation, s)
	}
}

// Movement is an immutable request to change a balance. It is created once by
// the caller and persisted exactly once per accepted request, together with
// the balance update it produced.
type Movement struct {
	MovementID string `json:"movementID"`
	RequestID  string `json:"requestID"`
	Channel    string `json:"channel"`
	AccountKey
	Amount    decimal.Decimal `json:"amount"`
	Direction Direction       `json:"direction"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewMovement builds a validated movement. The amount is a magnitude and must
// be non-negative; the direction supplies the sign. A zero amount is accepted
// and still produces a committed movement. A movement ID is generated when
// the caller did not supply one.
func NewMovement(key AccountKey, amount decimal.Decimal, direction string, requestID, channel string, now time.Time) (Movement, error) {
	if !key.IsComplete() {
		return Movement{}, fmt.Errorf("%w: account number, product number and currency code are all required", apperrors.ErrValidation)
	}
	if amount.IsNegative() {
		return Movement{}, fmt.Errorf("%w: amount must not be negative, got %s", apperrors.ErrValidation, amount)
	}
	dir, err := ParseDirection(direction)
	if err != nil {
		return Movement{}, err
	}
	return Movement{
		MovementID: uuid.NewString(),
		RequestID:  requestID,
		Channel:    channel,
		AccountKey: key,
		Amount:     amount,
		Direction:  dir,
		CreatedAt:  now,
	}, nil
}

// SignedAmount returns the delta this movement applies to the balance:
// +Amount for a credit, -Amount for a debit.
func (m Movement) SignedAmount() decimal.Decimal {
	if m.Direction == Debit {
		return m.Amount.Neg()
	}
	return m.Amount
}
