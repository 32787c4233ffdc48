package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads matching orders and their accessory
// lines straight from the database, skipping the write-side
// repositories. The filter applies to order header fields only, so
// a match surfaces the order with all of its lines.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler bound to a GORM connection.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. Orders come back newest first with
// lines in insertion order; headers without lines are omitted.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_number,
			extra_accessory,
			cell,
			order_date,
			is_closed,
			accessories_added
		FROM orders
	`
	clause, args := query.Filter().Clause()
	if clause != "" {
		sql += " WHERE " + clause
	}
	sql += " ORDER BY order_date DESC, id DESC"

	orders, err := h.scanOrders(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderView{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, row := range orders {
		ids = append(ids, row.ID)
	}

	lines, err := h.scanLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	return AssembleOrderViews(orders, lines), nil
}

func (h ListOrdersQueryHandler) scanOrders(
	ctx context.Context,
	sql string,
	args ...any,
) ([]OrderRow, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderRow, 0)
	for rows.Next() {
		var row OrderRow
		err = rows.Scan(
			&row.ID,
			&row.OrderNumber,
			&row.ExtraAccessory,
			&row.Cell,
			&row.OrderDate,
			&row.IsClosed,
			&row.AccessoriesAdded,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h ListOrdersQueryHandler) scanLines(ctx context.Context, orderIDs []int64) ([]LineRow, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			accessory_type,
			quantity
		FROM order_accessories
		WHERE order_id IN ?
		ORDER BY order_id, id
	`, orderIDs).Rows()
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
