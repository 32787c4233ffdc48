package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// DateLayout is the canonical string rendering of an order date.
// Listing, filtering, and export all render timestamps in this layout, so a
// date-only search term matches as a prefix of the rendered value.
const DateLayout = "2006-01-02 15:04:05"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIDAlreadyAssigned indicates an attempt to assign a surrogate id
	// to an order that already has one.
	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order represents one logical warehouse dispatch request. It is the aggregate
// root owning a collection of accessory lines and a two-stage lifecycle.
//
// Order follows these invariants:
//   - order number is a non-empty business key, unique across all orders;
//     it is the sole correlation key used to merge accessory submissions
//   - the extra-accessory flag and cell assignment are set at creation and
//     immutable thereafter
//   - an order holds at least one accessory line before it becomes visible
//   - the lifecycle is monotonic: once closed, an order never reopens;
//     re-closing is accepted and overwrites the accessories_added flag
//
// The surrogate id is assigned by the store on first insert. The struct uses
// private fields and maintains its invariants through validated methods.
type Order struct {
	// id is the store-assigned surrogate key, 0 until persisted
	id int64

	// orderNumber is the unique business key
	orderNumber string

	// extraAccessory records whether an extra accessory was requested
	extraAccessory bool

	// cell is the assigned storage-cell label
	cell kernel.Cell

	// orderDate is the creation timestamp
	orderDate time.Time

	// status is the current lifecycle state
	status Status

	// accessoriesAdded records whether accessories were physically added
	// before closing; meaningful only once the order is closed
	accessoriesAdded bool

	// lines are the accessory line items, in insertion order
	lines []*AccessoryLine

	guard kernel.ConstructorGuard
}

// NewOrder creates a new open Order with validation. This is the only way to
// create a valid order for first-time submission of an order number.
//
// The order starts Open with accessoriesAdded false. At least one accessory
// line is required: an order with no lines is a transient state that must
// never become visible.
func NewOrder(
	orderNumber string,
	extraAccessory bool,
	cell kernel.Cell,
	orderDate time.Time,
	lines []*AccessoryLine,
) (*Order, error) {
	o := &Order{
		extraAccessory: extraAccessory,
		status:         Open,
		guard:          kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setOrderNumber(orderNumber),
		o.setCell(cell),
		o.setOrderDate(orderDate),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including its
// lifecycle flags and accessory lines. The id must be a positive surrogate key.
//
// Unlike NewOrder, a restored order may carry zero lines: a row caught in the
// transient header-only state still needs to load so the close operation can
// reach it, though it stays invisible to listing and search.
func RestoreOrder(
	id int64,
	orderNumber string,
	extraAccessory bool,
	cell kernel.Cell,
	orderDate time.Time,
	status Status,
	accessoriesAdded bool,
	lines []*AccessoryLine,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order id",
			fmt.Errorf("%d is not a positive identifier", id),
		)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		id:               id,
		extraAccessory:   extraAccessory,
		status:           status,
		accessoriesAdded: accessoriesAdded,
		guard:            kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setOrderNumber(orderNumber),
		o.setCell(cell),
		o.setOrderDate(orderDate),
	); err != nil {
		return nil, err
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}
	o.lines = append([]*AccessoryLine(nil), lines...)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Call this when reconstructing orders from persistence to ensure integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their business key.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.orderNumber == other.orderNumber
}

// ID returns the store-assigned surrogate id, or 0 if not yet persisted.
func (o *Order) ID() int64 {
	return o.id
}

// OrderNumber returns the unique business key.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ExtraAccessory reports whether an extra accessory was requested at creation.
func (o *Order) ExtraAccessory() bool {
	return o.extraAccessory
}

// Cell returns the assigned storage cell.
func (o *Order) Cell() kernel.Cell {
	return o.cell
}

// OrderDate returns the creation timestamp.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// IsClosed reports whether the order has reached its terminal state.
func (o *Order) IsClosed() bool {
	return o.status.IsClosed()
}

// AccessoriesAdded reports whether accessories were physically added before
// closing. Defaults to false and has no meaning while the order is open.
func (o *Order) AccessoriesAdded() bool {
	return o.accessoriesAdded
}

// Lines returns the accessory lines in insertion order.
// The returned slice is a copy; the lines themselves are shared.
func (o *Order) Lines() []*AccessoryLine {
	return append([]*AccessoryLine(nil), o.lines...)
}

// IsPersisted reports whether the store has assigned this order an id.
func (o *Order) IsPersisted() bool {
	return o.id > 0
}

// AssignID records the surrogate id handed out by the store on first insert.
// Assigning twice or assigning a non-positive id is an error.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrOrderIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"order id",
			fmt.Errorf("%d is not a positive identifier", id),
		)
	}

	o.id = id
	return nil
}

// AppendLines adds further accessory lines to the order. This is how a repeat
// submission under an existing order number is merged: header fields from the
// later submission are ignored, its lines are appended.
//
// Lines sharing the accessory type of an existing line stay separate entries;
// quantities are never summed.
func (o *Order) AppendLines(lines []*AccessoryLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("accessory lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	o.lines = append(o.lines, lines...)
	return nil
}

// Close moves the order to its terminal state and records whether accessories
// were physically added beforehand.
//
// Closing an already-closed order is accepted and overwrites accessoriesAdded
// with the new value (idempotent-by-overwrite). The order never reopens.
func (o *Order) Close(accessoriesAdded bool) error {
	newStatus, err := o.status.Close()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.accessoriesAdded = accessoriesAdded
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCell(cell kernel.Cell) error {
	if err := cell.Validate(); err != nil {
		return err
	}
	o.cell = cell
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	o.orderDate = orderDate
	return nil
}

func (o *Order) setLines(lines []*AccessoryLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("accessory lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	o.lines = append([]*AccessoryLine(nil), lines...)
	return nil
}
