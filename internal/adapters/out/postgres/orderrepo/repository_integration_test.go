package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct {
	tracked []int64
}

func (t *mockAggregateTracker) TrackAggregate(id int64, _ any) {
	t.tracked = append(t.tracked, id)
}

type GormOrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *mockAggregateTracker
	repo      *orderrepo.GormOrderRepository
}

func (suite *GormOrderRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.AccessoryLineDTO{})
	suite.Require().NoError(err)
}

func (suite *GormOrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormOrderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)

	suite.tracker = &mockAggregateTracker{}
	suite.repo = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *GormOrderRepositoryTestSuite) newOrder(number string, accessoryTypes ...string) *order.Order {
	cell, err := kernel.DefaultCellSet().Cell("celda 10")
	suite.Require().NoError(err)

	lines := make([]*order.AccessoryLine, 0, len(accessoryTypes))
	for _, accessoryType := range accessoryTypes {
		line, lineErr := order.NewAccessoryLine(accessoryType, 1)
		suite.Require().NoError(lineErr)
		lines = append(lines, line)
	}

	aggregate, err := order.NewOrder(
		number,
		false,
		cell,
		time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		lines,
	)
	suite.Require().NoError(err)

	return aggregate
}

func (suite *GormOrderRepositoryTestSuite) TestAdd_AssignsIDsToOrderAndLines() {
	aggregate := suite.newOrder("X1-2043", "cable hdmi", "control remoto")

	err := suite.repo.Add(context.Background(), aggregate)

	suite.Require().NoError(err)
	suite.True(aggregate.IsPersisted())
	suite.Positive(aggregate.ID())
	for _, line := range aggregate.Lines() {
		suite.True(line.IsPersisted())
		suite.Positive(line.ID())
	}
	suite.Equal([]int64{aggregate.ID()}, suite.tracker.tracked)
}

func (suite *GormOrderRepositoryTestSuite) TestAdd_DuplicateNumber_ReturnsConflict() {
	first := suite.newOrder("X1-2043", "cable hdmi")
	err := suite.repo.Add(context.Background(), first)
	suite.Require().NoError(err)

	duplicate := suite.newOrder("X1-2043", "base pared")

	err = suite.repo.Add(context.Background(), duplicate)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *GormOrderRepositoryTestSuite) TestGet_ReturnsAggregateWithOrderedLines() {
	aggregate := suite.newOrder("X1-2043", "cable hdmi", "control remoto", "base pared")
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(context.Background(), aggregate.ID())

	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), loaded.ID())
	suite.Equal("X1-2043", loaded.OrderNumber())
	suite.Require().Len(loaded.Lines(), 3)
	suite.Equal("cable hdmi", loaded.Lines()[0].AccessoryType())
	suite.Equal("control remoto", loaded.Lines()[1].AccessoryType())
	suite.Equal("base pared", loaded.Lines()[2].AccessoryType())
}

func (suite *GormOrderRepositoryTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), 424242)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestGetByNumber_ReturnsAggregate() {
	aggregate := suite.newOrder("X1-2043", "cable hdmi")
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.repo.GetByNumber(context.Background(), "X1-2043")

	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), loaded.ID())
}

func (suite *GormOrderRepositoryTestSuite) TestGetByNumber_Unknown_ReturnsNotFound() {
	_, err := suite.repo.GetByNumber(context.Background(), "NO-SUCH")

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_AppendsOnlyNewLines() {
	aggregate := suite.newOrder("X1-2043", "cable hdmi")
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
	existingLineID := aggregate.Lines()[0].ID()

	newLine, err := order.NewAccessoryLine("control remoto", 2)
	suite.Require().NoError(err)
	err = aggregate.AppendLines([]*order.AccessoryLine{newLine})
	suite.Require().NoError(err)

	err = suite.repo.Update(context.Background(), aggregate)

	suite.Require().NoError(err)
	suite.True(newLine.IsPersisted())

	loaded, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Lines(), 2)
	suite.Equal(existingLineID, loaded.Lines()[0].ID())
	suite.Equal("control remoto", loaded.Lines()[1].AccessoryType())
	suite.Equal(2, loaded.Lines()[1].Quantity())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_PersistsLifecycleFlags() {
	aggregate := suite.newOrder("X1-2043", "cable hdmi")
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	err = aggregate.Close(true)
	suite.Require().NoError(err)

	err = suite.repo.Update(context.Background(), aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsClosed())
	suite.True(loaded.AccessoriesAdded())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_StaleAppendDoesNotReopenClosedOrder() {
	aggregate := suite.newOrder("X1-2043", "cable hdmi")
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	// Loaded before the close lands; still carries the open state.
	stale, err := suite.repo.GetByNumber(context.Background(), "X1-2043")
	suite.Require().NoError(err)

	closing, err := suite.repo.GetByNumber(context.Background(), "X1-2043")
	suite.Require().NoError(err)
	err = closing.Close(true)
	suite.Require().NoError(err)
	err = suite.repo.Update(context.Background(), closing)
	suite.Require().NoError(err)

	newLine, err := order.NewAccessoryLine("control remoto", 1)
	suite.Require().NoError(err)
	err = stale.AppendLines([]*order.AccessoryLine{newLine})
	suite.Require().NoError(err)

	err = suite.repo.Update(context.Background(), stale)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsClosed())
	suite.True(loaded.AccessoriesAdded())
	suite.Len(loaded.Lines(), 2)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_MissingHeader_ReturnsNotFound() {
	cell, err := kernel.DefaultCellSet().Cell("celda 10")
	suite.Require().NoError(err)
	line, err := order.RestoreAccessoryLine(1, "cable hdmi", 1)
	suite.Require().NoError(err)
	ghost, err := order.RestoreOrder(
		424242,
		"GHOST-1",
		false,
		cell,
		time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		order.Open,
		false,
		[]*order.AccessoryLine{line},
	)
	suite.Require().NoError(err)

	err = suite.repo.Update(context.Background(), ghost)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestDelete_RemovesOrderAndCascadesLines() {
	aggregate := suite.newOrder("X1-2043", "cable hdmi", "control remoto")
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	err = suite.repo.Delete(context.Background(), aggregate.ID())
	suite.Require().NoError(err)

	_, err = suite.repo.Get(context.Background(), aggregate.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var lineCount int64
	err = suite.db.Model(&orderrepo.AccessoryLineDTO{}).
		Where("order_id = ?", aggregate.ID()).
		Count(&lineCount).Error
	suite.Require().NoError(err)
	suite.Zero(lineCount)
}

func (suite *GormOrderRepositoryTestSuite) TestDelete_Unknown_ReturnsNotFound() {
	err := suite.repo.Delete(context.Background(), 424242)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGormOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormOrderRepositoryTestSuite))
}
