package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/historyrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/test/pgtest"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	orders   *orderrepo.GormOrderRepository
	products *productrepo.GormProductRepository
	stock    *historyrepo.GormStockHistoryRepository
	status   *historyrepo.GormStatusHistoryRepository
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.orders = orderrepo.NewGormOrderRepository(database.DB, noopTracker{})
	suite.products = productrepo.NewGormProductRepository(database.DB)
	suite.stock = historyrepo.NewGormStockHistoryRepository(database.DB)
	suite.status = historyrepo.NewGormStatusHistoryRepository(database.DB)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewListOrdersQuery("", nil, nil, nil)
	suite.Require().NoError(err)

	result, err := queries.NewListOrdersQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_NewestFirstWithItems() {
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	older := suite.addOrder(base, 2)
	newer := suite.addOrder(base.Add(time.Minute), 1)

	query, err := queries.NewListOrdersQuery("", nil, nil, nil)
	suite.Require().NoError(err)

	result, err := queries.NewListOrdersQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)

	suite.Require().Len(result[1].Items, 2)
	suite.Equal("Item 0", result[1].Items[0].Name)
	suite.Equal("Item 1", result[1].Items[1].Name)
	suite.Equal("pending", result[1].Status)
	suite.Equal("Asha", result[1].BuyerName)
	suite.Nil(result[1].Billing)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_FiltersByStatusAndBuyer() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	pending := suite.addOrder(now, 1)
	confirmed := suite.addOrder(now, 1)
	suite.Require().NoError(confirmed.Confirm("seller", now))
	suite.Require().NoError(suite.orders.Update(context.Background(), confirmed))

	handler := queries.NewListOrdersQueryHandler(suite.database.DB)

	byStatus, err := queries.NewListOrdersQuery("confirmed", nil, nil, nil)
	suite.Require().NoError(err)
	result, err := handler.Handle(context.Background(), byStatus)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(confirmed.ID(), result[0].ID)
	suite.Equal("seller", result[0].ConfirmedBy)

	buyerID := pending.Buyer().ID()
	byBuyer, err := queries.NewListOrdersQuery("", &buyerID, nil, nil)
	suite.Require().NoError(err)
	result, err = handler.Handle(context.Background(), byBuyer)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_FiltersByCalendarDays() {
	today := time.Now().UTC()
	lastMonth := today.AddDate(0, -1, 0)
	lastWeek := today.AddDate(0, 0, -7)

	old := suite.addOrder(lastMonth, 1)
	recent := suite.addOrder(lastWeek, 1)
	current := suite.addOrder(today.Truncate(time.Microsecond), 1)

	handler := queries.NewListOrdersQueryHandler(suite.database.DB)

	from := lastWeek
	sinceLastWeek, err := queries.NewListOrdersQuery("", nil, &from, nil)
	suite.Require().NoError(err)
	result, err := handler.Handle(context.Background(), sinceLastWeek)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(current.ID(), result[0].ID)
	suite.Equal(recent.ID(), result[1].ID)

	to := lastMonth
	untilLastMonth, err := queries.NewListOrdersQuery("", nil, nil, &to)
	suite.Require().NoError(err)
	result, err = handler.Handle(context.Background(), untilLastMonth)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(old.ID(), result[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ReturnsBillingAndDelivery() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	o := suite.addOrder(now, 1)
	suite.Require().NoError(o.Confirm("seller", now))
	suite.Require().NoError(o.SetOnTheWay(600, "seller", now))
	suite.Require().NoError(o.ApplyBill(o.Total(), order.Paid, "", "seller", now))
	suite.Require().NoError(suite.orders.Update(context.Background(), o))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("processing", view.Status)
	suite.Equal(int64(600), view.Delivery.TotalSeconds)
	suite.Equal(10, view.Delivery.LegacyMinutes)
	suite.Require().NotNil(view.Delivery.StartedAt)
	suite.Require().NotNil(view.Billing)
	suite.Equal("PAID", view.Billing.PaymentStatus)
	suite.True(o.Total().Decimal().Equal(view.Billing.FinalAmount))
	suite.Len(view.Items, 1)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderStatusHistory_Ascending() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	o := suite.addOrder(now, 1)
	suite.Require().NoError(o.Confirm("seller", now.Add(time.Minute)))
	suite.Require().NoError(o.Cancel("seller", "out of area", now.Add(2*time.Minute)))
	suite.Require().NoError(suite.orders.Update(context.Background(), o))
	suite.Require().NoError(suite.status.Append(context.Background(), o.PullStatusChanges()...))

	query, err := queries.NewGetOrderStatusHistoryQuery(o.ID())
	suite.Require().NoError(err)

	changes, err := queries.NewGetOrderStatusHistoryQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(changes, 3)
	suite.Nil(changes[0].OldStatus)
	suite.Equal("pending", changes[0].NewStatus)
	suite.Equal("confirmed", changes[1].NewStatus)
	suite.Equal("canceled", changes[2].NewStatus)
	suite.Equal("Order canceled: out of area", changes[2].Notes)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderStatusHistory_UnknownOrder() {
	query, err := queries.NewGetOrderStatusHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderStatusHistoryQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetStockHistory_NewestFirst() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := suite.addProduct("Water 1L", 10, nil)
	orderID := kernel.NewUUID()

	deducted, err := inventory.NewStockEntry(p.ID(), &orderID, inventory.OrderConfirmed,
		inventory.Movement{Before: 10, After: 7}, "seller", now, "")
	suite.Require().NoError(err)
	restocked, err := inventory.NewStockEntry(p.ID(), nil, inventory.Restock,
		inventory.Movement{Before: 7, After: 27}, "admin", now.Add(time.Hour), "Weekly delivery")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.stock.Append(context.Background(), deducted, restocked))

	query, err := queries.NewGetStockHistoryQuery(p.ID())
	suite.Require().NoError(err)

	entries, err := queries.NewGetStockHistoryQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(inventory.Restock.String(), entries[0].ChangeType)
	suite.Equal(20, entries[0].QuantityChange)
	suite.Nil(entries[0].OrderID)
	suite.Equal(-3, entries[1].QuantityChange)
	suite.Require().NotNil(entries[1].OrderID)
	suite.Equal(orderID, *entries[1].OrderID)
}

func (suite *QueriesIntegrationTestSuite) TestGetStockHistory_UnknownProduct() {
	query, err := queries.NewGetStockHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetStockHistoryQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetLowStockProducts_AscendingByStock() {
	five := 5
	suite.addProduct("Plenty", 50, nil)
	atThreshold := suite.addProduct("At threshold", 5, &five)
	empty := suite.addProduct("Empty", 0, nil)

	result, err := queries.NewGetLowStockProductsQueryHandler(suite.database.DB).
		Handle(context.Background(), queries.NewGetLowStockProductsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(empty.ID(), result[0].ID)
	suite.Equal(atThreshold.ID(), result[1].ID)
	suite.Equal(5, result[1].LowStockThreshold)
}

func (suite *QueriesIntegrationTestSuite) TestGetProduct_ReturnsCatalogEntry() {
	p := suite.addProduct("Water 1L", 10, nil)
	query, err := queries.NewGetProductQuery(p.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetProductQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(p.ID(), view.ID)
	suite.Equal("Water 1L", view.Name)
	suite.Equal("Beverages", view.Category)
	suite.Equal(10, view.StockQuantity)
	suite.Equal("20.00", view.Rate.StringFixed(2))
}

func (suite *QueriesIntegrationTestSuite) TestGetProduct_NotFound() {
	query, err := queries.NewGetProductQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetProductQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListProducts_ByNameAndCategory() {
	suite.addProduct("Water 1L", 10, nil)
	suite.addProduct("Cola 500ml", 10, nil)

	rate, err := kernel.MoneyFromString("5.00")
	suite.Require().NoError(err)
	cup, err := inventory.NewProduct(kernel.NewUUID(), "Paper Cup", "Disposables", 100, nil, rate, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.products.Add(context.Background(), cup))

	handler := queries.NewListProductsQueryHandler(suite.database.DB)

	all, err := handler.Handle(context.Background(), queries.NewListProductsQuery(""))
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal([]string{"Cola 500ml", "Paper Cup", "Water 1L"}, []string{all[0].Name, all[1].Name, all[2].Name})

	beverages, err := handler.Handle(context.Background(), queries.NewListProductsQuery("beverages"))
	suite.Require().NoError(err)
	suite.Require().Len(beverages, 2)
	suite.Equal("Cola 500ml", beverages[0].Name)

	none, err := handler.Handle(context.Background(), queries.NewListProductsQuery("Snacks"))
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderStats_AllTime() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.addOrder(now.AddDate(0, 0, -3), 1)
	suite.addOrder(now, 1)
	delivered := suite.addOrder(now, 1)
	suite.Require().NoError(delivered.ForceStatus(order.Delivered, "admin", now))
	suite.Require().NoError(suite.orders.Update(context.Background(), delivered))
	suite.addProduct("Water 1L", 10, nil)

	query, err := queries.NewGetOrderStatsQuery(nil, nil)
	suite.Require().NoError(err)

	stats, err := queries.NewGetOrderStatsQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(3), stats.TotalOrders)
	suite.Equal(int64(2), stats.PendingOrders)
	suite.Equal(int64(1), stats.DeliveredOrders)
	suite.Equal(int64(2), stats.TodayOrders)
	suite.Equal(int64(1), stats.ProductsCount)
	suite.Equal("75.00", stats.TotalRevenue.StringFixed(2))
	suite.Equal(queries.AllTimeLabel, stats.DateRangeLabel)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderStats_Period() {
	now := time.Now().UTC()
	suite.addOrder(now.AddDate(0, 0, -10), 1)
	suite.addOrder(now.AddDate(0, 0, -2), 1)

	from := now.AddDate(0, 0, -3)
	to := now.AddDate(0, 0, -1)
	query, err := queries.NewGetOrderStatsQuery(&from, &to)
	suite.Require().NoError(err)

	stats, err := queries.NewGetOrderStatsQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(1), stats.TotalOrders)
	suite.Equal(int64(0), stats.TodayOrders)
	suite.NotEqual(queries.AllTimeLabel, stats.DateRangeLabel)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderStats_SingleBoundCoversAllOrders() {
	now := time.Now().UTC()
	suite.addOrder(now.AddDate(0, 0, -10), 1)
	suite.addOrder(now.AddDate(0, 0, -2), 1)

	from := now.AddDate(0, 0, -3)
	query, err := queries.NewGetOrderStatsQuery(&from, nil)
	suite.Require().NoError(err)

	stats, err := queries.NewGetOrderStatsQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(2), stats.TotalOrders)
	suite.Equal(queries.AllTimeLabel, stats.DateRangeLabel)
}

func (suite *QueriesIntegrationTestSuite) addOrder(createdAt time.Time, itemCount int) *order.Order {
	buyer, err := order.NewBuyer(kernel.NewUUID(), "Asha", "+91 98450 00000", "12 Lake Rd")
	suite.Require().NoError(err)

	rate, err := kernel.MoneyFromString("5.00")
	suite.Require().NoError(err)

	items := make([]order.Item, 0, itemCount)
	for i := range itemCount {
		item, itemErr := order.NewItem(kernel.NewUUID(), fmt.Sprintf("Item %d", i), rate, 1)
		suite.Require().NoError(itemErr)
		items = append(items, item)
	}

	total, err := kernel.MoneyFromString("25.00")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), buyer, "", nil, total, items, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *QueriesIntegrationTestSuite) addProduct(name string, stock int, threshold *int) *inventory.Product {
	rate, err := kernel.MoneyFromString("20.00")
	suite.Require().NoError(err)

	p, err := inventory.NewProduct(kernel.NewUUID(), name, "Beverages", stock, threshold, rate, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.products.Add(context.Background(), p))
	return p
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
