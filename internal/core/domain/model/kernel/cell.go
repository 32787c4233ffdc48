package kernel

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// ErrCellIsNotConstructed indicates that a Cell was not created through
// CellSet.Cell or RestoreCell. This error is returned when validating a
// zero-value Cell.
var ErrCellIsNotConstructed = errs.NewValueIsRequiredError("Cell must be created via CellSet.Cell or RestoreCell")

// Cell is a value object representing a storage-cell label assigned to an
// order. Valid cells are drawn from a closed, configurable CellSet; the label
// itself is opaque to the domain.
//
// Cell is immutable and thread-safe. The zero value is invalid and must be
// constructed through CellSet.Cell (for new orders, validated against the
// configured set) or RestoreCell (for rehydration from persistence).
type Cell struct {
	label string
	guard ConstructorGuard
}

// RestoreCell reconstructs a Cell from its persisted label.
//
// Unlike CellSet.Cell, no set membership is checked: the configured set may
// have changed since the row was written, and stored orders must still load.
// Only a non-empty label is required.
func RestoreCell(label string) (Cell, error) {
	if label == "" {
		return Cell{}, errs.NewValueIsRequiredError("cell label")
	}
	return Cell{label: label, guard: NewConstructorGuard()}, nil
}

// Validate ensures the Cell was constructed through a factory function.
func (c Cell) Validate() error {
	return c.guard.Validate(ErrCellIsNotConstructed)
}

// Label returns the storage-cell label, e.g. "celda 10".
func (c Cell) Label() string {
	return c.label
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return c.label
}

// IsEqual compares two cells by label.
func (c Cell) IsEqual(other Cell) bool {
	return c.label == other.label
}

// CellSet is the closed set of storage-cell labels orders may be assigned to.
// The set is configuration data owned by the application wiring, not a domain
// constant: historical deployments used different hard-coded lists, so the
// labels are supplied at startup and the domain only enforces membership.
//
// CellSet is immutable once constructed and safe for concurrent use.
type CellSet struct {
	labels []string
	guard  ConstructorGuard
}

// ErrCellSetIsNotConstructed indicates that a CellSet was not created through
// NewCellSet or DefaultCellSet.
var ErrCellSetIsNotConstructed = errs.NewValueIsRequiredError("CellSet must be created via NewCellSet or DefaultCellSet")

// NewCellSet creates a CellSet from the configured labels.
// The set must be non-empty, labels must be non-blank, and duplicates are rejected.
func NewCellSet(labels []string) (CellSet, error) {
	if len(labels) == 0 {
		return CellSet{}, errs.NewValueIsRequiredError("cell labels")
	}

	seen := make(map[string]struct{}, len(labels))
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return CellSet{}, errs.NewValueIsRequiredError("cell label")
		}
		if _, ok := seen[label]; ok {
			return CellSet{}, errs.NewValueIsInvalidErrorWithCause(
				"cell labels",
				fmt.Errorf("%q appears more than once", label),
			)
		}
		seen[label] = struct{}{}
		cleaned = append(cleaned, label)
	}

	return CellSet{labels: cleaned, guard: NewConstructorGuard()}, nil
}

// DefaultCellSet returns the historical four-cell configuration used when no
// explicit cell list is configured.
func DefaultCellSet() CellSet {
	set, err := NewCellSet([]string{"celda 10", "celda 11", "celda 15", "celda 16"})
	if err != nil {
		// The built-in labels are statically valid.
		panic(err)
	}
	return set
}

// Validate ensures the CellSet was constructed through a factory function.
func (s CellSet) Validate() error {
	return s.guard.Validate(ErrCellSetIsNotConstructed)
}

// Cell returns the Cell for the given label if it belongs to the set.
// Returns a validation error for labels outside the configured enumeration.
func (s CellSet) Cell(label string) (Cell, error) {
	if err := s.Validate(); err != nil {
		return Cell{}, err
	}
	if label == "" {
		return Cell{}, errs.NewValueIsRequiredError("cell label")
	}

	for _, known := range s.labels {
		if known == label {
			return Cell{label: label, guard: NewConstructorGuard()}, nil
		}
	}

	return Cell{}, errs.NewValueIsInvalidErrorWithCause(
		"cell label",
		fmt.Errorf("%q is not one of the configured cells %v", label, s.labels),
	)
}

// Contains reports whether label belongs to the set.
func (s CellSet) Contains(label string) bool {
	for _, known := range s.labels {
		if known == label {
			return true
		}
	}
	return false
}

// Labels returns a copy of the configured labels in declaration order.
func (s CellSet) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}
