package repository

import (
	"database/sql"
	"testing"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMapErr(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "no rows", err: sql.ErrNoRows, target: errs.ErrNotFound},
		{name: "active borrow exists", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: activeBorrowIndex}, target: errs.ErrConflict},
		{name: "other unique", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "books_pkey"}, target: errs.ErrStorage},
		{name: "unknown curator", err: &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, target: errs.ErrValidation},
		{name: "check", err: &pgconn.PgError{Code: pgerrcode.CheckViolation, Message: "return_date"}, target: errs.ErrValidation},
		{name: "too long", err: &pgconn.PgError{Code: pgerrcode.StringDataRightTruncationDataException}, target: errs.ErrValidation},
		{name: "bad uuid", err: &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, target: errs.ErrNotFound},
		{name: "connection", err: errors.New("dial tcp: connection refused"), target: errs.ErrStorage},
	}
	for _, tt := range tests {
		require.ErrorIs(t, mapErr(errors.Wrap(tt.err, "query"), "op"), tt.target, tt.name)
	}
	require.NoError(t, mapErr(nil, "op"))
}

func TestPrefixed(t *testing.T) {
	t.Parallel()
	require.Equal(t, []string{"b.id", "b.title"}, prefixed("b", []string{"id", "title"}))
	require.Equal(t, "id, title", columnList([]string{"id", "title"}))
}
