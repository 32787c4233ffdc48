package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its lines, assigning the generated ids
// back into the aggregate. A duplicate order number comes back as a
// conflict so the caller can retry the submission as an append.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("orderNumber", aggregate.OrderNumber(), err)
		}
		return errs.NewStorageError("add order", err)
	}

	if err := r.assignIDs(aggregate, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists lifecycle flag changes and inserts lines appended
// since the aggregate was loaded. Existing line rows are never
// rewritten.
//
// The closed flag only ever moves towards closed in SQL, and
// accessoriesAdded is written only alongside a close. An aggregate
// loaded before a concurrent close would otherwise write its stale
// open state back over the committed one.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	updates := map[string]any{
		"is_closed": gorm.Expr("is_closed OR ?", aggregate.IsClosed()),
	}
	if aggregate.IsClosed() {
		updates["accessories_added"] = aggregate.AccessoriesAdded()
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID()).
		Updates(updates)
	if result.Error != nil {
		return errs.NewStorageError("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	dto := fromDomain(aggregate)
	if len(dto.Accessories) > 0 {
		for i := range dto.Accessories {
			dto.Accessories[i].OrderID = aggregate.ID()
		}
		if err := r.db.WithContext(ctx).Create(&dto.Accessories).Error; err != nil {
			return errs.NewStorageError("append order lines", err)
		}
		if err := r.assignIDs(aggregate, dto); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines by surrogate id.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Accessories", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, errs.NewStorageError("get order", err)
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order with its lines by business order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Accessories", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		First(&dto, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", orderNumber)
		}
		return nil, errs.NewStorageError("get order by number", err)
	}

	return toDomain(dto)
}

// Delete removes an order header; accessory lines go with it through
// the cascade constraint.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id)
	if result.Error != nil {
		return errs.NewStorageError("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}

	return nil
}

// assignIDs writes store-generated ids back into the aggregate and
// its freshly persisted lines. The DTO only carries lines that were
// unpersisted at conversion time, in aggregate order.
func (r *GormOrderRepository) assignIDs(aggregate *order.Order, dto OrderDTO) error {
	if !aggregate.IsPersisted() {
		if err := aggregate.AssignID(dto.ID); err != nil {
			return err
		}
	}

	i := 0
	for _, line := range aggregate.Lines() {
		if line.IsPersisted() {
			continue
		}
		if i >= len(dto.Accessories) {
			break
		}
		if err := line.AssignID(dto.Accessories[i].ID); err != nil {
			return err
		}
		i++
	}

	return nil
}

// isUniqueViolation recognizes a duplicate order number regardless of
// which driver surfaced it: lib/pq reports SQLSTATE 23505, while a
// GORM connection opened with TranslateError maps it to
// gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
