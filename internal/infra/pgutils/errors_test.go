package pgutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	plain := errors.New("boom")
	overflow := fmt.Errorf("update: %w", &pgconn.PgError{Code: "22003"})

	if !IsUniqueViolation(unique) || IsUniqueViolation(fk) || IsUniqueViolation(plain) {
		t.Fatalf("IsUniqueViolation misclassified")
	}

	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(unique) || IsForeignKeyViolation(nil) {
		t.Fatalf("IsForeignKeyViolation misclassified")
	}

	if !IsNumericOutOfRange(overflow) || IsNumericOutOfRange(unique) || IsNumericOutOfRange(plain) {
		t.Fatalf("IsNumericOutOfRange misclassified")
	}
}
