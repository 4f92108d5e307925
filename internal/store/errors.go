package store

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"

	"courier-dispatch/internal/apperr"
)

// IsNotFound - signals that the error is a missing key error.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

// mapErr classifies driver errors: timeouts and connectivity failures become
// apperr.ErrStoreUnavailable so callers never have to inspect redis internals.
func mapErr(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	default:
		return err
	}
}
