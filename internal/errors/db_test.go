package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError_Nil(t *testing.T) {
	assert.NoError(t, MapDBError(nil))
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(fmt.Errorf("query user: %w", pgx.ErrNoRows))
	assert.True(t, IsNotFound(err))
}

func TestMapDBError_ContextErrors(t *testing.T) {
	err := MapDBError(context.DeadlineExceeded)
	assert.Equal(t, ErrCodeTimeout, GetCode(err))

	err = MapDBError(context.Canceled)
	assert.Equal(t, ErrCodeCanceled, GetCode(err))
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "Key (email)=(a@example.com) already exists.",
	}

	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "email", appErr.Field)
}

func TestMapDBError_SingleAdminViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "users_single_admin",
		Detail:         "Key (role)=(admin) already exists.",
	}

	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "An administrator account already exists.", appErr.Message)
}

func TestMapDBError_ForeignKeyViolations(t *testing.T) {
	t.Run("still referenced", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:   pgerrcode.ForeignKeyViolation,
			Detail: `Key (id)=(abc) is still referenced from table "payments".`,
		}
		err := MapDBError(pgErr)
		require.True(t, IsForeignKey(err))

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "Payment")
	})

	t.Run("missing parent", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:   pgerrcode.ForeignKeyViolation,
			Detail: `Key (job_id)=(abc) is not present in table "jobs".`,
		}
		err := MapDBError(pgErr)
		require.True(t, IsForeignKey(err))

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "Job")
		assert.Contains(t, appErr.Message, "does not exist")
	})
}

func TestMapDBError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.CheckViolation,
		ColumnName: "budget_cents",
	}

	err := MapDBError(pgErr)
	require.True(t, IsValidation(err))

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "budget_cents", appErr.Field)
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	err := MapDBError(pgErr)
	assert.Equal(t, ErrCodeInternal, GetCode(err))
}

func TestMapDBError_PassthroughUnknown(t *testing.T) {
	original := errors.New("network hiccup")
	assert.Equal(t, original, MapDBError(original))
}
