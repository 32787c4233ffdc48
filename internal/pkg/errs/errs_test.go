package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with integer ID", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("0 is not greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: quantity (cause: 0 is not greater than 0)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("text", errors.New("hello\nworld"))
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("orderNumber")

		assert.Equal(t, "orderNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: orderNumber", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("orderNumber", cause)

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: orderNumber (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("orderNumber", "X1")

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "X1", err.Value)
		require.NoError(t, err.Cause)
		assert.Equal(t, "conflict: orderNumber X1", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicate key value violates unique constraint")
		err := errs.NewConflictErrorWithCause("orderNumber", "X1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"conflict: param is: orderNumber, value is: X1 (cause: duplicate key value violates unique constraint)",
			err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})
}

func TestStorageError(t *testing.T) {
	t.Run("NewStorageError", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewStorageError("insert order", cause)

		assert.Equal(t, "insert order", err.Operation)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "storage failure: insert order (cause: connection refused)", err.Error())
		assert.Equal(t, errs.ErrStorage, err.Unwrap())
	})

	t.Run("NewStorageError without cause", func(t *testing.T) {
		err := errs.NewStorageError("commit", nil)
		assert.Equal(t, "storage failure: commit", err.Error())
	})
}

func TestErrorsIsClassification(t *testing.T) {
	t.Run("wrapped errors match their sentinel", func(t *testing.T) {
		require.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewObjectNotFoundError("x", 1), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewConflictError("x", 1), errs.ErrConflict)
		require.ErrorIs(t, errs.NewStorageError("x", nil), errs.ErrStorage)
	})

	t.Run("kinds do not cross-match", func(t *testing.T) {
		assert.NotErrorIs(t, errs.NewConflictError("x", 1), errs.ErrObjectNotFound)
		assert.NotErrorIs(t, errs.NewStorageError("x", nil), errs.ErrConflict)
	})
}
