package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Open ──> Closed
//	            │
//	            └──> Closed (re-close allowed, overwrites accessories_added)
//
// Closed is terminal: an order never returns to Open.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status when an order is first created.
	// Accessory lines may still be appended while an order is open.
	Open

	// Closed indicates the order lifecycle has finished. The
	// accessories_added flag is recorded at the moment of closing.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Open:    "Open",
		Closed:  "Closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:   "Open",
		Closed: "Closed",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Open and Closed; Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsClosed reports whether the status is terminal.
func (s Status) IsClosed() bool {
	return s == Closed
}

// Close transitions the status to Closed.
//
// Valid transitions:
//   - Open -> Closed (normal close)
//   - Closed -> Closed (re-close; the caller overwrites accessories_added)
//
// Any other source status is invalid.
func (s Status) Close() (Status, error) {
	if s != Open && s != Closed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to close", s.String()),
		)
	}
	return Closed, nil
}
