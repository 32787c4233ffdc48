// Package orderrepo persists order aggregates through GORM, mapping
// between the domain model and the orders / order_accessories tables.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO is the database row for an order header. The unique index
// on OrderNumber backs the one-aggregate-per-number rule; concurrent
// creators lose to it and retry as an append.
type OrderDTO struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	OrderNumber      string `gorm:"uniqueIndex;not null"`
	ExtraAccessory   bool
	Cell             string
	OrderDate        time.Time
	IsClosed         bool
	AccessoriesAdded bool

	Accessories []AccessoryLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AccessoryLineDTO is the database row for a single accessory line.
// Rows are append-only; the cascade constraint removes them with
// their parent order.
type AccessoryLineDTO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	OrderID       int64  `gorm:"index;not null"`
	AccessoryType string `gorm:"not null"`
	Quantity      int    `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "order_accessories".
func (AccessoryLineDTO) TableName() string {
	return "order_accessories"
}

// fromDomain converts an order aggregate to its database form,
// including only lines that have not been persisted yet. Persisted
// lines are append-only and never rewritten.
func fromDomain(aggregate *order.Order) OrderDTO {
	accessories := make([]AccessoryLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		if line.IsPersisted() {
			continue
		}
		accessories = append(accessories, AccessoryLineDTO{
			AccessoryType: line.AccessoryType(),
			Quantity:      line.Quantity(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID(),
		OrderNumber:      aggregate.OrderNumber(),
		ExtraAccessory:   aggregate.ExtraAccessory(),
		Cell:             aggregate.Cell().Label(),
		OrderDate:        aggregate.OrderDate(),
		IsClosed:         aggregate.Status().IsClosed(),
		AccessoriesAdded: aggregate.AccessoriesAdded(),
		Accessories:      accessories,
	}
}

// toDomain reconstructs an order aggregate from its database form.
// The stored cell label is taken as-is so rows written under an older
// cell configuration still load.
func toDomain(dto OrderDTO) (*order.Order, error) {
	cell, err := kernel.RestoreCell(dto.Cell)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.AccessoryLine, 0, len(dto.Accessories))
	for _, lineDTO := range dto.Accessories {
		line, lineErr := order.RestoreAccessoryLine(
			lineDTO.ID,
			lineDTO.AccessoryType,
			lineDTO.Quantity,
		)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	status := order.Open
	if dto.IsClosed {
		status = order.Closed
	}

	return order.RestoreOrder(
		dto.ID,
		dto.OrderNumber,
		dto.ExtraAccessory,
		cell,
		dto.OrderDate,
		status,
		dto.AccessoriesAdded,
		lines,
	)
}
