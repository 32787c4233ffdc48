package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All mutation of stored orders goes through this port; multi-statement
// operations are atomic within the surrounding unit of work.
type OrderRepository interface {
	// Add persists a new order header together with its accessory lines and
	// assigns store-generated surrogate ids back into the aggregate.
	// A duplicate order number surfaces as a ConflictError so the caller can
	// route the submission to an append instead.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists lifecycle flag changes and inserts any accessory lines
	// that have not been persisted yet (line append). Returns a NotFoundError
	// if the header row no longer exists.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its full accessory-line collection by
	// surrogate id. Returns a NotFoundError if absent.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetByNumber retrieves an order with its lines by business order number.
	// Returns a NotFoundError if absent.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// Delete removes an order and, atomically, every accessory line
	// referencing it. Administrative operation; returns a NotFoundError if
	// the order does not exist.
	Delete(ctx context.Context, id int64) error
}
