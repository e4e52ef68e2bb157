package postgresql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// isUnavailable reports whether err means the database could not be reached
// or did not answer in time, as opposed to a query or mapping failure.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08: connection exception, 53: insufficient resources,
		// 57P01-57P03: shutdown or not accepting connections.
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "53") ||
			pgErr.Code == "57P01" || pgErr.Code == "57P02" || pgErr.Code == "57P03"
	}
	return false
}

// storeError wraps a failed op. Only connectivity failures are marked as
// ErrStoreUnavailable; anything else is a plain error.
func storeError(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %w", attendance.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
