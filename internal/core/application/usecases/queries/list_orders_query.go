package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves orders matching a search filter, newest
// first. An empty filter lists every order.
//
// Example:
//
//	query := NewListOrdersQuery(NewSearchFilter("X1", ""))
//	views, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	filter SearchFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query for the given filter.
func NewListOrdersQuery(filter SearchFilter) (ListOrdersQuery, error) {
	if err := filter.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Filter returns the search filter the query carries.
func (q ListOrdersQuery) Filter() SearchFilter {
	return q.filter
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
