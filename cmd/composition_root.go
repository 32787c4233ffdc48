package cmd

import (
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// CompositionRoot wires handlers to their infrastructure dependencies.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cells      kernel.CellSet
}

// NewCompositionRoot builds the root from configuration and an open
// database connection. The cell set comes from configuration when
// present, otherwise the built-in warehouse layout applies.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	cells := kernel.DefaultCellSet()
	if labels := config.CellLabels(); labels != nil {
		configured, err := kernel.NewCellSet(labels)
		if err != nil {
			return CompositionRoot{}, err
		}
		cells = configured
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cells:      cells,
	}, nil
}

// Cells returns the configured set of dispatch cells.
func (c *CompositionRoot) Cells() kernel.CellSet {
	return c.cells
}

// DB exposes the shared GORM connection for read-side consumers.
func (c *CompositionRoot) DB() *gorm.DB {
	return c.gormDB
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCloseOrderCommandHandler() commands.CloseOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByNumberQueryHandler() queries.GetOrderByNumberQueryHandler {
	return queries.NewGetOrderByNumberQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
