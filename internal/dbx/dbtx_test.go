package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("db down"), false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"}), true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("expected true for code 23503")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("expected false for code 23505")
	}
	if IsForeignKeyViolation(errors.New("other")) {
		t.Fatal("expected false for non-pg error")
	}
}
