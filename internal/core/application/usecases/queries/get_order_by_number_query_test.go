package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderByNumberQuery(t *testing.T) {
	t.Run("accepts and trims an order number", func(t *testing.T) {
		query, err := queries.NewGetOrderByNumberQuery("  X1-2043  ")

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, "X1-2043", query.OrderNumber())
	})

	t.Run("rejects a blank order number", func(t *testing.T) {
		_, err := queries.NewGetOrderByNumberQuery("   ")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetOrderByNumberQuery

		err := query.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrGetOrderByNumberQueryIsNotConstructed)
	})
}
