package ports

import (
	"context"

	"github.com/nsubra/account-ledger/internal/core/domain"
)

// MovementStore defines the persistence operations the ledger needs. Any
// backing store that can offer an atomic, version-conditioned multi-record
// commit satisfies the contract.
type MovementStore interface {
	// FindAccount retrieves the account for the given composite identity.
	// Returns apperrors.ErrNotFound when no such account exists.
	FindAccount(ctx context.Context, key domain.AccountKey) (*domain.Account, error)

	// FindMovementByRequestID retrieves a previously committed movement by its
	// caller-supplied request identifier. Returns apperrors.ErrNotFound when
	// none exists. Used by the optional idempotency policy, not by the commit.
	FindMovementByRequestID(ctx context.Context, requestID string) (*domain.Movement, error)

	// CommitMovement atomically persists the movement and writes the account
	// at expectedVersion+1, conditioned on the stored version still being
	// expectedVersion. An expectedVersion of 0 means the account must not
	// exist yet and is inserted. Either both records become visible or
	// neither does. Returns apperrors.ErrConflict when a concurrent writer
	// changed the version (or created the account first).
	CommitMovement(ctx context.Context, movement domain.Movement, account domain.Account, expectedVersion int64) error
}
