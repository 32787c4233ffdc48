package queries

import (
	"context"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderByNumberQueryHandler resolves a single order view by exact
// order number match.
type GetOrderByNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByNumberQueryHandler creates a handler bound to a GORM connection.
func NewGetOrderByNumberQueryHandler(db *gorm.DB) GetOrderByNumberQueryHandler {
	return GetOrderByNumberQueryHandler{db: db}
}

// Handle looks up the order. Returns errs.ErrObjectNotFound when no
// order carries the number.
//
// A header without lines is still returned here, with an empty
// accessory slice, even though the listing omits such orders. Lookup
// by number must show the order's lifecycle state regardless.
func (h GetOrderByNumberQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByNumberQuery,
) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			extra_accessory,
			cell,
			order_date,
			is_closed,
			accessories_added
		FROM orders
		WHERE order_number = ?
	`, query.OrderNumber()).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	var header OrderRow
	found := false
	for rows.Next() {
		err = rows.Scan(
			&header.ID,
			&header.OrderNumber,
			&header.ExtraAccessory,
			&header.Cell,
			&header.OrderDate,
			&header.IsClosed,
			&header.AccessoriesAdded,
		)
		if err != nil {
			return OrderView{}, err
		}
		found = true
	}
	if err = rows.Err(); err != nil {
		return OrderView{}, err
	}
	if !found {
		return OrderView{}, errs.NewObjectNotFoundError("orderNumber", query.OrderNumber())
	}

	lines, err := h.scanLines(ctx, header.ID)
	if err != nil {
		return OrderView{}, err
	}

	views := AssembleOrderViews([]OrderRow{header}, lines)
	if len(views) == 0 {
		// Header exists but carries no lines; expose the order anyway
		// so callers can see its state.
		return OrderView{
			ID:               header.ID,
			OrderNumber:      header.OrderNumber,
			ExtraAccessory:   header.ExtraAccessory,
			Cell:             header.Cell,
			OrderDate:        header.OrderDate,
			IsClosed:         header.IsClosed,
			AccessoriesAdded: header.AccessoriesAdded,
			Accessories:      []AccessoryView{},
		}, nil
	}

	return views[0], nil
}

func (h GetOrderByNumberQueryHandler) scanLines(ctx context.Context, orderID int64) ([]LineRow, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			accessory_type,
			quantity
		FROM order_accessories
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]LineRow, 0)
	for rows.Next() {
		var line LineRow
		err = rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.AccessoryType,
			&line.Quantity,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
