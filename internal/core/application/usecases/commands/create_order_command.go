package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// LineItem is one accessory submission: a type label plus a quantity.
// It is plain input data; validation happens in NewCreateOrderCommand.
type LineItem struct {
	AccessoryType string
	Quantity      int
}

// CreateOrderCommand represents one submission of accessory lines under a
// business order number.
//
// The first submission for a number creates the order with the submitted
// header fields; later submissions under the same number append their lines
// to the existing order and their header fields are ignored.
//
// Example:
//
//	cell, _ := cellSet.Cell("celda 10")
//	cmd, err := NewCreateOrderCommand("X1", false, cell, []LineItem{{"bolt", 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber    string
	extraAccessory bool
	cell           kernel.Cell
	lines          []LineItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to submit accessory lines for an order.
// Validates that the order number is non-empty, the cell was drawn from the
// configured set, at least one line is present, and every line has a non-empty
// type and positive quantity.
func NewCreateOrderCommand(
	orderNumber string,
	extraAccessory bool,
	cell kernel.Cell,
	lines []LineItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		extraAccessory: extraAccessory,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setCell(cell),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderNumber returns the business order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// ExtraAccessory returns the extra-accessory flag of this submission.
func (c CreateOrderCommand) ExtraAccessory() bool {
	return c.extraAccessory
}

// Cell returns the storage cell of this submission.
func (c CreateOrderCommand) Cell() kernel.Cell {
	return c.cell
}

// Lines returns the submitted accessory line items in submission order.
func (c CreateOrderCommand) Lines() []LineItem {
	return append([]LineItem(nil), c.lines...)
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setCell(cell kernel.Cell) error {
	if err := cell.Validate(); err != nil {
		return err
	}
	c.cell = cell
	return nil
}

func (c *CreateOrderCommand) setLines(lines []LineItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("accessory lines")
	}
	for i, line := range lines {
		if line.AccessoryType == "" {
			return errs.NewValueIsRequiredErrorWithCause(
				"accessory type",
				fmt.Errorf("line %d has no accessory type", i),
			)
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("line %d quantity %d is not greater than 0", i, line.Quantity),
			)
		}
	}

	c.lines = append([]LineItem(nil), lines...)
	return nil
}
