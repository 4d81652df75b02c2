package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Wizlit-Org/file-service/internal/domain"
)

// --- Тесты classify ---

func TestClassify_Nil(t *testing.T) {
	if err := classify(nil); err != nil {
		t.Errorf("classify(nil) = %v, ожидался nil", err)
	}
}

func TestClassify_NoRows(t *testing.T) {
	err := classify(pgx.ErrNoRows)
	if !errors.Is(err, domain.ErrFileNotFound) {
		t.Errorf("err = %v, ожидалась ErrFileNotFound", err)
	}
}

func TestClassify_WrappedNoRows(t *testing.T) {
	err := classify(fmt.Errorf("query: %w", pgx.ErrNoRows))
	if !errors.Is(err, domain.ErrFileNotFound) {
		t.Errorf("err = %v, ожидалась ErrFileNotFound", err)
	}
}

func TestClassify_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "files_file_hash_key"}
	err := classify(pgErr)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, ожидалась ErrConflict", err)
	}
}

func TestClassify_UnknownWrappedAsInternal(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := classify(cause)
	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("err = %v, ожидалась ErrInternal", err)
	}
	// исходная причина сохраняется в тексте для диагностики
	if got := err.Error(); !strings.Contains(got, "connection reset by peer") {
		t.Errorf("текст ошибки %q не содержит причины", got)
	}
}

func TestClassify_OtherPgErrorIsInternal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502"} // not_null_violation
	err := classify(pgErr)
	if !errors.Is(err, domain.ErrInternal) {
		t.Errorf("err = %v, ожидалась ErrInternal", err)
	}
}
