package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors
var (
	// ErrTaskNotFound is returned when no task has the requested id
	ErrTaskNotFound = errors.New("task not found")

	// ErrUnavailable is returned when the database cannot be reached
	ErrUnavailable = errors.New("database unavailable")

	// ErrInvalidTask is returned when the database rejects a row (CHECK or NOT NULL)
	ErrInvalidTask = errors.New("invalid task")
)

// classify maps driver errors onto the sentinels above, keeping the
// original error in the chain.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsOperatorIntervention(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code):
			return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
		case pgErr.Code == pgerrcode.CheckViolation,
			pgErr.Code == pgerrcode.NotNullViolation,
			pgErr.Code == pgerrcode.StringDataRightTruncationDataException,
			pgErr.Code == pgerrcode.InvalidDatetimeFormat:
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidTask, pgErr.Message)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) ||
		errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
