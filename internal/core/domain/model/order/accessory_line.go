package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrAccessoryLineIsNotConstructed indicates that an AccessoryLine was not
	// created through NewAccessoryLine or RestoreAccessoryLine.
	ErrAccessoryLineIsNotConstructed = errors.New(
		"AccessoryLine must be created via NewAccessoryLine or RestoreAccessoryLine",
	)

	// ErrLineIDAlreadyAssigned indicates an attempt to assign a surrogate id
	// to a line that already has one.
	ErrLineIDAlreadyAssigned = errors.New("accessory line id is already assigned")
)

// AccessoryLine is one accessory item attached to an order: a type label plus
// a quantity. Repeated submissions of the same type are legitimate separate
// lines and are never merged or summed.
//
// Invariants:
//   - accessory type is a non-empty label
//   - quantity is greater than 0
//
// The surrogate id is assigned by the store on first insert; a line with id 0
// has not been persisted yet.
type AccessoryLine struct {
	id            int64
	accessoryType string
	quantity      int

	guard kernel.ConstructorGuard
}

// NewAccessoryLine creates a not-yet-persisted line with validation.
func NewAccessoryLine(accessoryType string, quantity int) (*AccessoryLine, error) {
	line := &AccessoryLine{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setAccessoryType(accessoryType),
		line.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreAccessoryLine reconstructs a persisted line from storage.
// The id must be a positive surrogate key.
func RestoreAccessoryLine(id int64, accessoryType string, quantity int) (*AccessoryLine, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"accessory line id",
			fmt.Errorf("%d is not a positive identifier", id),
		)
	}

	line, err := NewAccessoryLine(accessoryType, quantity)
	if err != nil {
		return nil, err
	}

	line.id = id
	return line, nil
}

// Validate ensures the line was created through a constructor.
func (l *AccessoryLine) Validate() error {
	if l == nil {
		return ErrAccessoryLineIsNotConstructed
	}
	return l.guard.Validate(ErrAccessoryLineIsNotConstructed)
}

// ID returns the store-assigned surrogate id, or 0 if not yet persisted.
func (l *AccessoryLine) ID() int64 {
	return l.id
}

// AccessoryType returns the accessory type label.
func (l *AccessoryLine) AccessoryType() string {
	return l.accessoryType
}

// Quantity returns the line quantity.
func (l *AccessoryLine) Quantity() int {
	return l.quantity
}

// IsPersisted reports whether the store has assigned this line an id.
func (l *AccessoryLine) IsPersisted() bool {
	return l.id > 0
}

// AssignID records the surrogate id handed out by the store.
// Assigning twice or assigning a non-positive id is an error.
func (l *AccessoryLine) AssignID(id int64) error {
	if l.id != 0 {
		return ErrLineIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"accessory line id",
			fmt.Errorf("%d is not a positive identifier", id),
		)
	}

	l.id = id
	return nil
}

func (l *AccessoryLine) setAccessoryType(accessoryType string) error {
	if accessoryType == "" {
		return errs.NewValueIsRequiredError("accessory type")
	}
	l.accessoryType = accessoryType
	return nil
}

func (l *AccessoryLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	l.quantity = quantity
	return nil
}
