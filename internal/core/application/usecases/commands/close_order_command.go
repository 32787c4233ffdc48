package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCloseOrderCommandIsNotConstructed = errors.New(
		"CloseOrderCommand must be created via NewCloseOrderCommand constructor",
	)
)

// CloseOrderCommand represents a request to move an order to its terminal
// Closed state, recording whether accessories were physically added before
// closing. Re-closing an already-closed order is accepted and overwrites the
// accessories-added flag with the new value.
type CloseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          int64
	accessoriesAdded bool

	guard guard.ConstructorGuard
}

// NewCloseOrderCommand creates a command to close the order with the given
// surrogate id. The id must be positive.
func NewCloseOrderCommand(orderID int64, accessoriesAdded bool) (CloseOrderCommand, error) {
	cmd := CloseOrderCommand{
		accessoriesAdded: accessoriesAdded,
		guard:            guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CloseOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloseOrderCommandIsNotConstructed)
}

// OrderID returns the surrogate id of the order to close.
func (c CloseOrderCommand) OrderID() int64 {
	return c.orderID
}

// AccessoriesAdded returns whether accessories were physically added before closing.
func (c CloseOrderCommand) AccessoriesAdded() bool {
	return c.accessoriesAdded
}

func (c *CloseOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"order id",
			fmt.Errorf("%d is not a positive identifier", orderID),
		)
	}
	c.orderID = orderID
	return nil
}
