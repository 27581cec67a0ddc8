package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nsubra/account-ledger/internal/core/domain"
)

// SubmitMovementRequest defines the data needed to apply a movement.
// Direction accepts CREDIT/DEBIT or the short forms C/D, case-insensitively.
type SubmitMovementRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	ProductNumber string          `json:"productNumber" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Direction     string          `json:"direction" binding:"required,direction"`
	RequestID     string          `json:"requestID"` // Optional caller-supplied idempotency key
	Channel       string          `json:"channel"`   // Optional originating channel
}

// AccountKey builds the composite identity targeted by the request.
func (r SubmitMovementRequest) AccountKey() domain.AccountKey {
	return domain.AccountKey{
		AccountNumber: r.AccountNumber,
		ProductNumber: r.ProductNumber,
		CurrencyCode:  r.CurrencyCode,
	}
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountNumber string          `json:"accountNumber"`
	ProductNumber string          `json:"productNumber"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Country       string          `json:"country"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		ProductNumber: acc.ProductNumber,
		CurrencyCode:  acc.CurrencyCode,
		Balance:       acc.Balance,
		City:          acc.Address.City,
		State:         acc.Address.State,
		Country:       acc.Address.Country,
		Version:       acc.Version,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}
