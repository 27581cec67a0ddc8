package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nsubra/account-ledger/internal/apperrors"
)

// RetryOnConflict re-drives fn while it fails with apperrors.ErrConflict, up
// to attempts invocations in total, sleeping backoff between them. Each
// invocation is a complete unit of work (fresh read, fresh commit); no state
// carries over between attempts. Any other error propagates immediately.
// When the budget runs out with conflicts still occurring, the result wraps
// both apperrors.ErrRetryExhausted and the final conflict.
func RetryOnConflict(ctx context.Context, attempts int, backoff time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 && backoff > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		err = fn(ctx)
		if err == nil || !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", apperrors.ErrRetryExhausted, attempts, err)
}
