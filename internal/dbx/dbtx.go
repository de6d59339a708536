// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// and helpers to classify PostgreSQL constraint violations.
package dbx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Concurrent writers racing on a unique index lose with this
// error; repositories translate it into a domain outcome.
func IsUniqueViolation(err error) bool {
	return pgErrCode(err) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// violation, e.g. inserting a relation row for a deleted parent.
func IsForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgForeignKeyViolation
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
