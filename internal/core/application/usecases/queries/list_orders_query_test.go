package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("accepts a constructed filter", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(queries.NewSearchFilter("X1", "2026"))

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, "X1", query.Filter().NumberContains())
		assert.Equal(t, "2026", query.Filter().DatePrefix())
	})

	t.Run("accepts an empty filter", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(queries.NewSearchFilter("", ""))

		require.NoError(t, err)
		assert.True(t, query.Filter().IsEmpty())
	})

	t.Run("rejects a zero-value filter", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(queries.SearchFilter{})

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrSearchFilterIsNotConstructed)
	})
}

func TestListOrdersQuery_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.ListOrdersQuery

		err := query.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)
	})
}
