package queries

import (
	"sort"
	"time"
)

// OrderRow is an order header as read from the orders table.
type OrderRow struct {
	ID               int64
	OrderNumber      string
	ExtraAccessory   bool
	Cell             string
	OrderDate        time.Time
	IsClosed         bool
	AccessoriesAdded bool
}

// LineRow is an accessory line as read from the order_accessories table.
type LineRow struct {
	ID            int64
	OrderID       int64
	AccessoryType string
	Quantity      int
}

// AccessoryView is a single accessory line within an OrderView.
type AccessoryView struct {
	ID            int64
	AccessoryType string
	Quantity      int
}

// OrderView is the read model returned by order queries: an order
// header joined with its accessory lines.
//
// Example:
//
//	views := AssembleOrderViews(orders, lines)
//	for _, v := range views {
//	    fmt.Printf("%s in %s: %d lines\n", v.OrderNumber, v.Cell, len(v.Accessories))
//	}
type OrderView struct {
	ID               int64
	OrderNumber      string
	ExtraAccessory   bool
	Cell             string
	OrderDate        time.Time
	IsClosed         bool
	AccessoriesAdded bool
	Accessories      []AccessoryView
}

// AssembleOrderViews joins order headers with their accessory lines.
// Views come back newest first (order date descending, then id
// descending so same-timestamp orders rank by creation recency) with
// lines in insertion order. Headers without a single line are dropped
// from the result.
func AssembleOrderViews(orders []OrderRow, lines []LineRow) []OrderView {
	linesByOrder := make(map[int64][]AccessoryView, len(orders))
	for _, line := range lines {
		linesByOrder[line.OrderID] = append(linesByOrder[line.OrderID], AccessoryView{
			ID:            line.ID,
			AccessoryType: line.AccessoryType,
			Quantity:      line.Quantity,
		})
	}
	for _, accessories := range linesByOrder {
		sort.Slice(accessories, func(i, j int) bool {
			return accessories[i].ID < accessories[j].ID
		})
	}

	views := make([]OrderView, 0, len(orders))
	for _, row := range orders {
		accessories, ok := linesByOrder[row.ID]
		if !ok {
			continue
		}
		views = append(views, OrderView{
			ID:               row.ID,
			OrderNumber:      row.OrderNumber,
			ExtraAccessory:   row.ExtraAccessory,
			Cell:             row.Cell,
			OrderDate:        row.OrderDate,
			IsClosed:         row.IsClosed,
			AccessoriesAdded: row.AccessoriesAdded,
			Accessories:      accessories,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].OrderDate.Equal(views[j].OrderDate) {
			return views[i].OrderDate.After(views[j].OrderDate)
		}
		return views[i].ID > views[j].ID
	})

	return views
}
