// Package queries contains read-side handlers that bypass the domain
// repositories and read the order tables directly through GORM.
package queries

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/guard"
)

// ErrSearchFilterIsNotConstructed indicates direct struct initialization bypass.
var ErrSearchFilterIsNotConstructed = errors.New(
	"SearchFilter must be created via NewSearchFilter constructor",
)

// SearchFilter narrows an order listing by number substring and/or
// order date prefix. Both terms are optional; an empty filter matches
// every order. The two terms combine with AND.
//
// Example:
//
//	filter := NewSearchFilter("X1", "2026-09")
//	clause, args := filter.Clause()
//	// clause: "order_number ILIKE ? AND to_char(order_date, 'YYYY-MM-DD HH24:MI:SS') LIKE ?"
type SearchFilter struct {
	numberContains string
	datePrefix     string

	guard guard.ConstructorGuard
}

// NewSearchFilter creates a filter from raw search terms. Terms are
// trimmed; blank terms disable the corresponding condition.
func NewSearchFilter(numberContains string, datePrefix string) SearchFilter {
	return SearchFilter{
		numberContains: strings.TrimSpace(numberContains),
		datePrefix:     strings.TrimSpace(datePrefix),
		guard:          guard.NewConstructorGuard(),
	}
}

// Validate ensures the filter was created through the constructor.
func (f SearchFilter) Validate() error {
	return f.guard.Validate(ErrSearchFilterIsNotConstructed)
}

// NumberContains returns the order number search term, empty when unset.
func (f SearchFilter) NumberContains() string {
	return f.numberContains
}

// DatePrefix returns the order date prefix term, empty when unset.
func (f SearchFilter) DatePrefix() string {
	return f.datePrefix
}

// IsEmpty reports whether the filter carries no conditions.
func (f SearchFilter) IsEmpty() bool {
	return f.numberContains == "" && f.datePrefix == ""
}

// Clause renders the filter as a SQL condition with positional
// arguments. Number matching is a case-insensitive substring match;
// date matching compares the textual form of order_date against the
// term as a prefix, so "2026-09" matches every September order and
// "2026-09-01 14" narrows to a single hour. An empty filter renders
// an empty clause with no arguments.
func (f SearchFilter) Clause() (string, []any) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if f.numberContains != "" {
		conditions = append(conditions, "order_number ILIKE ?")
		args = append(args, "%"+f.numberContains+"%")
	}
	if f.datePrefix != "" {
		conditions = append(conditions, "to_char(order_date, 'YYYY-MM-DD HH24:MI:SS') LIKE ?")
		args = append(args, f.datePrefix+"%")
	}

	return strings.Join(conditions, " AND "), args
}
