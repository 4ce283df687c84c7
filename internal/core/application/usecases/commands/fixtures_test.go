package commands_test

import (
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/test"

	"github.com/stretchr/testify/require"
)

const actor = "admin-1"

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newProduct(t *testing.T, name string, stock int, rate string) *inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(kernel.NewUUID(), name, "water", stock, nil, money(t, rate), time.Now())
	require.NoError(t, err)
	return p
}

func newItem(t *testing.T, p *inventory.Product, quantity int) order.Item {
	t.Helper()
	item, err := order.NewItem(p.ID(), p.Name(), p.Rate(), quantity)
	require.NoError(t, err)
	return item
}

func newPendingOrder(t *testing.T, total string, items ...order.Item) *order.Order {
	t.Helper()
	buyer, err := order.NewBuyer(kernel.NewUUID(), "Asha", "+91 98450 00000", "12 Lake Rd")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), buyer, "", nil, money(t, total), items, time.Now())
	require.NoError(t, err)
	return o
}

// memoryFactories wires a test.Store to every factory shape the handlers use.
type memoryFactories struct {
	store *test.Store
}

func newMemory() memoryFactories {
	return memoryFactories{store: test.NewStore()}
}

func (m memoryFactories) uow() uowFactory {
	return func() commands.UoW { return m.store.Create() }
}

func (m memoryFactories) stock() stockUoWFactory {
	return func() commands.StockUoW { return m.store.Create() }
}

func (m memoryFactories) catalog() catalogUoWFactory {
	return func() commands.CatalogUoW { return m.store.Create() }
}

// confirmed seeds a pending order for the given items and confirms it
// through the handler so that the stock is actually held.
func (m memoryFactories) confirmed(t *testing.T, total string, items ...order.Item) *order.Order {
	t.Helper()
	o := newPendingOrder(t, total, items...)
	m.store.SeedOrder(o)

	cmd, err := commands.NewConfirmOrderCommand(o.ID(), actor)
	require.NoError(t, err)
	confirmed, err := commands.NewConfirmOrderCommandHandler(m.uow(), nil).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return confirmed
}

// processing takes a confirmed order to processing with a tracking number.
func (m memoryFactories) processing(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	cmd, err := commands.NewMarkProcessingCommand(o.ID(), "TRK-1", "BlueDart", nil, actor)
	require.NoError(t, err)
	processing, err := commands.NewMarkProcessingCommandHandler(m.uow(), nil).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return processing
}
