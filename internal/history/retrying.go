package history

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"courier-dispatch/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingReader behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingReader retries transient analytical store failures with
// exponential backoff. Reads are idempotent, so retrying is safe.
type RetryingReader struct {
	next    Reader
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetryingReader wraps next, returns nil when next is nil.
func NewRetryingReader(next Reader, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingReader {
	if next == nil {
		return nil
	}
	return &RetryingReader{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// CourierHistory retries the underlying read.
func (r *RetryingReader) CourierHistory(ctx context.Context, courierID string, limit int) (*CourierHistory, error) {
	var out *CourierHistory
	err := r.do(ctx, "CourierHistory", func() error {
		var err error
		out, err = r.next.CourierHistory(ctx, courierID, limit)
		return err
	})
	return out, err
}

// RegionPerformance retries the underlying read.
func (r *RetryingReader) RegionPerformance(ctx context.Context) ([]RegionPerformance, error) {
	var out []RegionPerformance
	err := r.do(ctx, "RegionPerformance", func() error {
		var err error
		out, err = r.next.RegionPerformance(ctx)
		return err
	})
	return out, err
}

// TopCouriers retries the underlying read.
func (r *RetryingReader) TopCouriers(ctx context.Context, n int) ([]TopCourier, error) {
	var out []TopCourier
	err := r.do(ctx, "TopCouriers", func() error {
		var err error
		out, err = r.next.TopCouriers(ctx, n)
		return err
	})
	return out, err
}

func (r *RetryingReader) do(ctx context.Context, method string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("history reader retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, r.sleep, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable reports whether the failure is transient: timeouts, broken
// connections, Postgres connection-class errors.
func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exceptions.
		return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08"
	}
	return pgconn.SafeToRetry(err)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

// sleepWithContext waits through the injected sleep func so tests can skip
// real delays; cancellation during the wait aborts the retry loop.
func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
	if d <= 0 {
		return true
	}
	woke := make(chan struct{})
	go func() {
		defer close(woke)
		sleep(d)
	}()
	select {
	case <-ctx.Done():
		return false
	case <-woke:
		return true
	}
}
