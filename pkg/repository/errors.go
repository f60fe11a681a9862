package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is a closed classification of database errors. Callers switch on
// Kind instead of inspecting error message text.
type Kind int

// Database error kinds.
const (
	KindNone Kind = iota
	KindNotFound
	KindDuplicate
	KindTransient
	KindOther
)

const (
	pgDuplicateKeyCode = "23505"

	// Class 08 covers connection exceptions; 57P0x covers server
	// shutdown states that resolve once the server returns.
	pgConnectionClass = "08"
	pgShutdownPrefix  = "57P0"
)

// Classify maps an error to its Kind. Only connection-level failures are
// classified transient; timeouts and server errors within an established
// session are not.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgDuplicateKeyCode:
			return KindDuplicate
		case strings.HasPrefix(pgErr.Code, pgConnectionClass),
			strings.HasPrefix(pgErr.Code, pgShutdownPrefix):
			return KindTransient
		}
		return KindOther
	}

	if errors.Is(err, driver.ErrBadConn) || pgconn.SafeToRetry(err) {
		return KindTransient
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return KindTransient
	}

	return KindOther
}

// IsTransient reports whether err is a connection-level failure worth
// retrying.
func IsTransient(err error) bool {
	return Classify(err) == KindTransient
}

// MapError translates database errors to domain errors. It maps
// sql.ErrNoRows to notFoundErr and PostgreSQL unique violation (23505)
// to duplicateErr. Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	switch Classify(err) {
	case KindNotFound:
		return notFoundErr
	case KindDuplicate:
		return duplicateErr
	}

	return err
}
