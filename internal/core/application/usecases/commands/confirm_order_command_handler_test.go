package commands_test

import (
	"errors"
	"sync"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	water := newProduct(t, "Mineral Water 1L", 10, "15.00")
	o := newPendingOrder(t, "83.00", newItem(t, water, 2))
	o.PullStatusChanges()
	o.PullDomainEvents()

	cmd, err := commands.NewConfirmOrderCommand(o.ID(), actor)
	require.NoError(t, err)

	event := order.StatusChangedEvent{OrderID: o.ID(), Status: order.Confirmed}
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	stock := new(MockStockHistoryRepository)
	statuses := new(MockStatusHistoryRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("ProductRepository").Return(products).Once(),
		products.On("GetForUpdate", ctx, water.ID()).Return(water, nil).Once(),
		products.On("Update", ctx, water).Return(nil).Once(),
		uow.On("StockHistoryRepository").Return(stock).Once(),
		stock.On("Append", ctx, mock.AnythingOfType("[]inventory.StockEntry")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("StatusHistoryRepository").Return(statuses).Once(),
		statuses.On("Append", ctx, mock.AnythingOfType("[]order.StatusChange")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("PullDomainEvents").Return([]kernel.DomainEvent{event}).Once(),
		publisher.On("Publish", ctx, []kernel.DomainEvent{event}).Return().Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, publisher)
	confirmed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Confirmed, confirmed.Status())
	assert.Equal(t, actor, confirmed.ConfirmedBy())
	assert.Equal(t, 8, water.StockQuantity())

	entries := stock.Calls[0].Arguments.Get(1).([]inventory.StockEntry)
	require.Len(t, entries, 1)
	assert.Equal(t, inventory.OrderConfirmed, entries[0].ChangeType())
	assert.Equal(t, -2, entries[0].QuantityChange())
	assert.Equal(t, "Stock deducted for order #"+o.ID().String(), entries[0].Notes())

	orders.AssertExpectations(t)
	products.AssertExpectations(t)
	stock.AssertExpectations(t)
	statuses.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewConfirmOrderCommandHandler(factory, nil)

	_, err := h.Handle(t.Context(), commands.ConfirmOrderCommand{})
	require.ErrorIs(t, err, commands.ErrConfirmOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestConfirmOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewConfirmOrderCommand(id, actor)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewConfirmOrderCommandHandler(factory, nil).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestConfirmOrderCommandHandler_Handle_DeductsAllItems(t *testing.T) {
	memory := newMemory()
	water := newProduct(t, "Mineral Water 1L", 10, "15.00")
	soda := newProduct(t, "Soda 500ml", 4, "25.00")
	memory.store.SeedProduct(water)
	memory.store.SeedProduct(soda)

	o := newPendingOrder(t, "83.00", newItem(t, water, 2), newItem(t, soda, 1))
	memory.store.SeedOrder(o)

	cmd, err := commands.NewConfirmOrderCommand(o.ID(), actor)
	require.NoError(t, err)
	publisher := &RecordingPublisher{}

	confirmed, err := commands.NewConfirmOrderCommandHandler(memory.uow(), publisher).Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, confirmed.Status())

	assert.Equal(t, 8, memory.store.Product(water.ID()).StockQuantity())
	assert.Equal(t, 3, memory.store.Product(soda.ID()).StockQuantity())
	assert.Len(t, memory.store.StockEntries(water.ID()), 1)
	assert.Len(t, memory.store.StockEntries(soda.ID()), 1)

	changes := memory.store.StatusChanges(o.ID())
	require.Len(t, changes, 1)
	assert.Equal(t, order.Pending, *changes[0].OldStatus())
	assert.Equal(t, order.Confirmed, changes[0].NewStatus())
	assert.Equal(t, "Order confirmed, stock deducted", changes[0].Notes())

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, order.Confirmed, publisher.Events[0].(order.StatusChangedEvent).Status)
}

func TestConfirmOrderCommandHandler_Handle_InsufficientStockLeavesNothingBehind(t *testing.T) {
	memory := newMemory()
	water := newProduct(t, "Mineral Water 1L", 10, "15.00")
	soda := newProduct(t, "Soda 500ml", 1, "25.00")
	memory.store.SeedProduct(water)
	memory.store.SeedProduct(soda)

	o := newPendingOrder(t, "83.00", newItem(t, water, 2), newItem(t, soda, 3))
	memory.store.SeedOrder(o)

	cmd, err := commands.NewConfirmOrderCommand(o.ID(), actor)
	require.NoError(t, err)
	publisher := new(MockEventPublisher)

	_, err = commands.NewConfirmOrderCommandHandler(memory.uow(), publisher).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Soda 500ml")

	assert.Equal(t, order.Pending, memory.store.Order(o.ID()).Status())
	assert.Equal(t, 10, memory.store.Product(water.ID()).StockQuantity())
	assert.Equal(t, 1, memory.store.Product(soda.ID()).StockQuantity())
	assert.Empty(t, memory.store.StockEntries(water.ID()))
	assert.Empty(t, memory.store.StatusChanges(o.ID()))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestConfirmOrderCommandHandler_Handle_ConcurrentConfirmationsDeductOnce(t *testing.T) {
	memory := newMemory()
	water := newProduct(t, "Mineral Water 1L", 10, "15.00")
	memory.store.SeedProduct(water)

	o := newPendingOrder(t, "83.00", newItem(t, water, 3))
	memory.store.SeedOrder(o)

	cmd, err := commands.NewConfirmOrderCommand(o.ID(), actor)
	require.NoError(t, err)
	h := commands.NewConfirmOrderCommandHandler(memory.uow(), nil)

	const attempts = 2
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = h.Handle(t.Context(), cmd)
		}()
	}
	wg.Wait()

	var succeeded, invalid int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrInvalidState):
			invalid++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, invalid)
	assert.Equal(t, 7, memory.store.Product(water.ID()).StockQuantity())
	assert.Len(t, memory.store.StockEntries(water.ID()), 1)
}

func TestConfirmOrderCommandHandler_Handle_AlreadyConfirmed(t *testing.T) {
	memory := newMemory()
	water := newProduct(t, "Mineral Water 1L", 10, "15.00")
	memory.store.SeedProduct(water)
	o := memory.confirmed(t, "83.00", newItem(t, water, 1))

	cmd, err := commands.NewConfirmOrderCommand(o.ID(), actor)
	require.NoError(t, err)

	_, err = commands.NewConfirmOrderCommandHandler(memory.uow(), nil).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, 9, memory.store.Product(water.ID()).StockQuantity())
}
