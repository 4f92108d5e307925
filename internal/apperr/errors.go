package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition indicates that the order is not in the status required
// by the requested operation. Repeating a finished transition fails with this
// error instead of silently succeeding twice.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrNoAssignment indicates that no assignment record exists for an order
// that is expected to have one.
var ErrNoAssignment = errors.New("no assignment found")

// ErrNoCandidates indicates that a selection query matched no couriers.
var ErrNoCandidates = errors.New("no candidates")

// ErrStoreUnavailable indicates a timeout or connectivity failure from one of
// the backing stores. Callers may retry; the services themselves never do.
var ErrStoreUnavailable = errors.New("store unavailable")
