package orderrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/test/pgtest"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.db = database.DB
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	o := suite.createTestOrder(2)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), loaded.ID())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal("Asha", loaded.Buyer().Name())
	suite.Equal("12 Lake Rd", loaded.DeliveryAddress())
	suite.Equal("83.00", loaded.Total().String())
	suite.Require().NotNil(loaded.Coordinates())
	suite.InDelta(12.97, loaded.Coordinates().Latitude(), 1e-9)
	suite.Nil(loaded.Billing())
	suite.Equal(int64(0), loaded.Version())

	suite.Require().Len(loaded.Items(), 2)
	suite.Equal(o.Items()[0].ProductID(), loaded.Items()[0].ProductID())
	suite.Equal("Item 0", loaded.Items()[0].Name())
	suite.Equal("Item 1", loaded.Items()[1].Name())
	suite.Equal("15.00", loaded.Items()[0].Rate().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_Conflict() {
	ctx := context.Background()
	o := suite.createTestOrder(1)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	err := suite.repository.Add(ctx, o)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleFields() {
	ctx := context.Background()
	o := suite.createTestOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(o.Confirm("seller", now))
	suite.Require().NoError(o.SetOnTheWay(90, "seller", now))
	amount, _ := kernel.MoneyFromString("50.00")
	suite.Require().NoError(o.ApplyBill(amount, order.PartiallyPaid, "cash", "seller", now))

	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(int64(1), o.Version())

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, loaded.Status())
	suite.Equal("seller", loaded.ConfirmedBy())
	suite.Equal(int64(90), loaded.Delivery().TotalSeconds)
	suite.Equal(2, loaded.Delivery().LegacyMinutes)
	suite.Equal(now.Unix(), loaded.Delivery().StartEpoch)
	suite.Require().NotNil(loaded.Billing())
	suite.Equal("50.00", loaded.Billing().FinalAmount.String())
	suite.Equal(order.PartiallyPaid, loaded.Billing().PaymentStatus)
	suite.Equal("cash", loaded.Billing().Notes)
	suite.Equal(int64(1), loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesItems() {
	ctx := context.Background()
	o := suite.createTestOrder(3)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	rate, _ := kernel.MoneyFromString("40.00")
	item, err := order.NewItem(kernel.NewUUID(), "Cola 2L", rate, 1)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Edit([]order.Item{item}, nil, nil))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal("Cola 2L", loaded.Items()[0].Name())
	suite.Equal("62.00", loaded.Total().String())

	var rows int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Where("order_id = ?", o.ID().Bytes()).Count(&rows).Error)
	suite.Equal(int64(1), rows)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	o := suite.createTestOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(first.Confirm("seller", now))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Cancel("seller", "", now))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_NotFound() {
	o := suite.createTestOrder(1)
	err := suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_BlocksConcurrentLock() {
	ctx := context.Background()
	o := suite.createTestOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	_, err := orderrepo.NewGormOrderRepository(tx, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	other := suite.db.Begin()
	suite.Require().NoError(other.Error)
	defer other.Rollback()
	suite.Require().NoError(other.Exec("SET LOCAL lock_timeout = '200ms'").Error)

	_, err = orderrepo.NewGormOrderRepository(other, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(itemCount int) *order.Order {
	buyer, err := order.NewBuyer(kernel.NewUUID(), "Asha", "+91 98450 00000", "12 Lake Rd")
	suite.Require().NoError(err)

	rate, _ := kernel.MoneyFromString("15.00")
	items := make([]order.Item, 0, itemCount)
	for i := range itemCount {
		item, itemErr := order.NewItem(kernel.NewUUID(), fmt.Sprintf("Item %d", i), rate, i+1)
		suite.Require().NoError(itemErr)
		items = append(items, item)
	}

	point, err := kernel.NewGeoPoint(12.97, 77.59)
	suite.Require().NoError(err)
	total, _ := kernel.MoneyFromString("83.00")

	o, err := order.NewOrder(kernel.NewUUID(), buyer, "", &point, total, items, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
