package queries

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderByNumberQueryIsNotConstructed = errors.New(
	"GetOrderByNumberQuery must be created via NewGetOrderByNumberQuery constructor",
)

// GetOrderByNumberQuery retrieves a single order by its exact order
// number.
type GetOrderByNumberQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetOrderByNumberQuery creates a lookup query for the given order
// number. The number is trimmed and must not be blank.
func NewGetOrderByNumberQuery(orderNumber string) (GetOrderByNumberQuery, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return GetOrderByNumberQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}
	return GetOrderByNumberQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// OrderNumber returns the number being looked up.
func (q GetOrderByNumberQuery) OrderNumber() string {
	return q.orderNumber
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByNumberQueryIsNotConstructed)
}
