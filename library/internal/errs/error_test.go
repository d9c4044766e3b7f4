package errs_test

import (
	"database/sql"
	"testing"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	err := errs.Validation("name is required")
	require.ErrorIs(t, err, errs.ErrValidation)
	require.NotErrorIs(t, err, errs.ErrConflict)
	require.Equal(t, "name is required: invalid input", err.Error())
}

func TestStorage(t *testing.T) {
	require.NoError(t, errs.Storage(nil, "GetBook"))

	err := errs.Storage(errors.Wrap(sql.ErrConnDone, "select"), "GetBook")
	require.ErrorIs(t, err, errs.ErrStorage)
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.Contains(t, err.Error(), "GetBook: storage unavailable")
}
