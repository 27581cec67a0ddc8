package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nsubra/account-ledger/internal/apperrors"
	"github.com/nsubra/account-ledger/internal/core/domain"
	"github.com/nsubra/account-ledger/internal/core/ports"
)

// LedgerOptions carries the domain policies of the ledger: the balance a
// lazily created account starts from, the address it is seeded with, the
// retry budget for conflicting commits, and whether resubmissions with a
// known request ID are rejected.
type LedgerOptions struct {
	OpeningBalance   decimal.Decimal
	SeedAddress      domain.Address
	RetryAttempts    int
	RetryBackoff     time.Duration
	RejectDuplicates bool
}

// LedgerService applies movements to accounts under optimistic concurrency
// control. It holds no in-process lock; serialization for a given account
// identity comes entirely from the store's version-conditioned commit, so it
// is safe to call concurrently from any number of workers and processes.
type LedgerService struct {
	store ports.MovementStore
	opts  LedgerOptions
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store ports.MovementStore, opts LedgerOptions) *LedgerService {
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 1
	}
	return &LedgerService{store: store, opts: opts}
}

// Apply performs one read-apply-commit cycle for the movement and returns the
// committed account. It reads the account for the movement's identity (or
// synthesizes one at the opening balance), adds the movement's signed amount,
// and commits both records atomically, conditioned on the version read. A
// concurrent writer surfaces as apperrors.ErrConflict with no partial effect;
// callers wanting automatic re-drive use ApplyWithRetry.
func (s *LedgerService) Apply(ctx context.Context, movement domain.Movement) (*domain.Account, error) {
	now := time.Now().UTC()

	account, err := s.store.FindAccount(ctx, movement.AccountKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		seeded := domain.NewAccount(movement.AccountKey, s.opts.OpeningBalance, s.opts.SeedAddress, now)
		account = &seeded
	} else if err != nil {
		return nil, fmt.Errorf("failed to find account for movement %s: %w", movement.MovementID, err)
	}

	expectedVersion := account.Version

	updated := *account
	updated.Balance = account.Balance.Add(movement.SignedAmount())
	updated.Version = expectedVersion + 1
	updated.LastUpdatedAt = now

	if err := s.store.CommitMovement(ctx, movement, updated, expectedVersion); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ApplyWithRetry wraps Apply in the conflict retry policy: the whole cycle is
// re-driven on apperrors.ErrConflict up to the configured attempt budget, and
// the optional duplicate-request check runs once before the first attempt.
func (s *LedgerService) ApplyWithRetry(ctx context.Context, movement domain.Movement) (*domain.Account, error) {
	if s.opts.RejectDuplicates && movement.RequestID != "" {
		if err := s.checkDuplicate(ctx, movement.RequestID); err != nil {
			return nil, err
		}
	}

	var account *domain.Account
	err := RetryOnConflict(ctx, s.opts.RetryAttempts, s.opts.RetryBackoff, func(ctx context.Context) error {
		var applyErr error
		account, applyErr = s.Apply(ctx, movement)
		return applyErr
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount retrieves the account for the given composite identity.
func (s *LedgerService) GetAccount(ctx context.Context, key domain.AccountKey) (*domain.Account, error) {
	if !key.IsComplete() {
		return nil, fmt.Errorf("%w: incomplete account identity", apperrors.ErrValidation)
	}
	return s.store.FindAccount(ctx, key)
}

// checkDuplicate is the configurable idempotency policy layered above the
// commit. It is best-effort: a resubmission racing the original can still
// pass the check, and the commit itself stays policy-free.
func (s *LedgerService) checkDuplicate(ctx context.Context, requestID string) error {
	existing, err := s.store.FindMovementByRequestID(ctx, requestID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check request ID %s: %w", requestID, err)
	}
	return fmt.Errorf("%w: request %s already applied as movement %s", apperrors.ErrDuplicate, requestID, existing.MovementID)
}
