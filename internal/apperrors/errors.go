package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a conditional commit lost against a concurrent
// writer: the stored version no longer matched the version read. No partial
// effect is visible when this is returned.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrRetryExhausted indicates that the retry budget ran out while conflicts
// persisted. It always wraps ErrConflict, so errors.Is(err, ErrConflict) holds.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// ErrStoreUnavailable indicates that the backing store could not be reached
// or timed out. Not retried by the ledger; left to the caller.
var ErrStoreUnavailable = errors.New("store unavailable")
