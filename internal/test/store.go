// Package test provides in-memory stand-ins for the persistence ports, used
// by handler tests that need real transactional behavior without a database.
package test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback outside of Begin.
var ErrNoTransaction = errors.New("no active transaction")

// Store keeps orders, products and both history logs in memory.
//
// A unit of work holds the store lock from Begin until Commit or Rollback,
// so concurrent units of work serialize the way row locks make them serialize
// in Postgres. Rollback restores the snapshot taken at Begin.
type Store struct {
	mu sync.Mutex

	orders        map[kernel.UUID]order.State
	products      map[kernel.UUID]*inventory.Product
	stockHistory  []inventory.StockEntry
	statusHistory []order.StatusChange

	// FailNextCommit makes the next Commit fail with this error and roll back.
	FailNextCommit error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orders:   make(map[kernel.UUID]order.State),
		products: make(map[kernel.UUID]*inventory.Product),
	}
}

// Create returns a new unit of work over the store.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

// SeedProduct stores p outside of any unit of work.
func (s *Store) SeedProduct(p *inventory.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID()] = cloneProduct(p)
}

// SeedOrder stores o outside of any unit of work. Pending status changes and
// events on o are discarded.
func (s *Store) SeedOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.PullStatusChanges()
	o.PullDomainEvents()
	s.orders[o.ID()] = cloneState(o.Snapshot())
}

// Product returns the committed state of a product, or nil.
func (s *Store) Product(id kernel.UUID) *inventory.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return cloneProduct(p)
}

// Order returns the committed state of an order, or nil.
func (s *Store) Order(id kernel.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.orders[id]
	if !ok {
		return nil
	}
	o, err := order.RestoreOrder(cloneState(state))
	if err != nil {
		return nil
	}
	return o
}

// StockEntries returns the committed stock history of a product, oldest first.
func (s *Store) StockEntries(productID kernel.UUID) []inventory.StockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []inventory.StockEntry
	for _, e := range s.stockHistory {
		if e.ProductID().IsEqual(productID) {
			entries = append(entries, e)
		}
	}
	return entries
}

// StatusChanges returns the committed status history of an order, oldest first.
func (s *Store) StatusChanges(orderID kernel.UUID) []order.StatusChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changes []order.StatusChange
	for _, c := range s.statusHistory {
		if c.OrderID().IsEqual(orderID) {
			changes = append(changes, c)
		}
	}
	return changes
}

type snapshot struct {
	orders        map[kernel.UUID]order.State
	products      map[kernel.UUID]*inventory.Product
	stockHistory  int
	statusHistory int
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		orders:        make(map[kernel.UUID]order.State, len(s.orders)),
		products:      make(map[kernel.UUID]*inventory.Product, len(s.products)),
		stockHistory:  len(s.stockHistory),
		statusHistory: len(s.statusHistory),
	}
	for id, state := range s.orders {
		snap.orders[id] = cloneState(state)
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.orders = snap.orders
	s.products = snap.products
	s.stockHistory = s.stockHistory[:snap.stockHistory]
	s.statusHistory = s.statusHistory[:snap.statusHistory]
}

// UnitOfWork is the in-memory ports.UnitOfWork.
type UnitOfWork struct {
	store   *Store
	active  bool
	before  snapshot
	tracked []any
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.store.mu.Lock()
	u.before = u.store.snapshot()
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	defer u.release()

	if err := u.store.FailNextCommit; err != nil {
		u.store.FailNextCommit = nil
		u.store.restore(u.before)
		u.tracked = nil
		return err
	}
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	defer u.release()

	u.store.restore(u.before)
	u.tracked = nil
	return nil
}

func (u *UnitOfWork) release() {
	u.active = false
	u.before = snapshot{}
	u.store.mu.Unlock()
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderRepository{uow: u}
}

func (u *UnitOfWork) ProductRepository() ports.ProductRepository {
	return productRepository{uow: u}
}

func (u *UnitOfWork) StockHistoryRepository() ports.StockHistoryRepository {
	return stockHistoryRepository{uow: u}
}

func (u *UnitOfWork) StatusHistoryRepository() ports.StatusHistoryRepository {
	return statusHistoryRepository{uow: u}
}

type eventSource interface {
	PullDomainEvents() []kernel.DomainEvent
}

func (u *UnitOfWork) PullDomainEvents() []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, aggregate := range u.tracked {
		if source, ok := aggregate.(eventSource); ok {
			events = append(events, source.PullDomainEvents()...)
		}
	}
	u.tracked = nil
	return events
}

func (u *UnitOfWork) track(aggregate any) {
	for _, tracked := range u.tracked {
		if tracked == aggregate {
			return
		}
	}
	u.tracked = append(u.tracked, aggregate)
}

func (u *UnitOfWork) requireActive() error {
	if !u.active {
		return ErrNoTransaction
	}
	return nil
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := errors.Join(r.uow.requireActive(), aggregate.Validate()); err != nil {
		return err
	}
	r.uow.store.orders[aggregate.ID()] = cloneState(aggregate.Snapshot())
	r.uow.track(aggregate)
	return nil
}

func (r orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := errors.Join(r.uow.requireActive(), aggregate.Validate()); err != nil {
		return err
	}

	stored, ok := r.uow.store.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if stored.Version != aggregate.Version() {
		return errs.NewConflictErrorWithCause("order", aggregate.ID().String(),
			errs.NewVersionIsInvalidErrorWithCause("version"))
	}

	aggregate.AdvanceVersion()
	r.uow.store.orders[aggregate.ID()] = cloneState(aggregate.Snapshot())
	r.uow.track(aggregate)
	return nil
}

func (r orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := r.uow.requireActive(); err != nil {
		return nil, err
	}
	state, ok := r.uow.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(cloneState(state))
}

func (r orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

type productRepository struct {
	uow *UnitOfWork
}

func (r productRepository) Add(_ context.Context, product *inventory.Product) error {
	if err := errors.Join(r.uow.requireActive(), product.Validate()); err != nil {
		return err
	}
	r.uow.store.products[product.ID()] = cloneProduct(product)
	return nil
}

func (r productRepository) Update(_ context.Context, product *inventory.Product) error {
	if err := errors.Join(r.uow.requireActive(), product.Validate()); err != nil {
		return err
	}
	if _, ok := r.uow.store.products[product.ID()]; !ok {
		return errs.NewObjectNotFoundError("product", product.ID().String())
	}
	r.uow.store.products[product.ID()] = cloneProduct(product)
	return nil
}

func (r productRepository) Get(_ context.Context, id kernel.UUID) (*inventory.Product, error) {
	if err := r.uow.requireActive(); err != nil {
		return nil, err
	}
	p, ok := r.uow.store.products[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return cloneProduct(p), nil
}

func (r productRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*inventory.Product, error) {
	return r.Get(ctx, id)
}

func (r productRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := r.uow.requireActive(); err != nil {
		return err
	}
	if _, ok := r.uow.store.products[id]; !ok {
		return errs.NewObjectNotFoundError("product", id.String())
	}
	delete(r.uow.store.products, id)
	return nil
}

type stockHistoryRepository struct {
	uow *UnitOfWork
}

func (r stockHistoryRepository) Append(_ context.Context, entries ...inventory.StockEntry) error {
	if err := r.uow.requireActive(); err != nil {
		return err
	}
	r.uow.store.stockHistory = append(r.uow.store.stockHistory, entries...)
	return nil
}

func (r stockHistoryRepository) ListByProduct(_ context.Context, productID kernel.UUID) ([]inventory.StockEntry, error) {
	if err := r.uow.requireActive(); err != nil {
		return nil, err
	}
	var entries []inventory.StockEntry
	for _, e := range r.uow.store.stockHistory {
		if e.ProductID().IsEqual(productID) {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangedAt().After(entries[j].ChangedAt())
	})
	return entries, nil
}

type statusHistoryRepository struct {
	uow *UnitOfWork
}

func (r statusHistoryRepository) Append(_ context.Context, changes ...order.StatusChange) error {
	if err := r.uow.requireActive(); err != nil {
		return err
	}
	r.uow.store.statusHistory = append(r.uow.store.statusHistory, changes...)
	return nil
}

func (r statusHistoryRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	if err := r.uow.requireActive(); err != nil {
		return nil, err
	}
	var changes []order.StatusChange
	for _, c := range r.uow.store.statusHistory {
		if c.OrderID().IsEqual(orderID) {
			changes = append(changes, c)
		}
	}
	return changes, nil
}

func cloneState(state order.State) order.State {
	state.Items = append([]order.Item(nil), state.Items...)
	if state.Billing != nil {
		billing := *state.Billing
		state.Billing = &billing
	}
	if state.Coordinates != nil {
		point := *state.Coordinates
		state.Coordinates = &point
	}
	return state
}

func cloneProduct(p *inventory.Product) *inventory.Product {
	clone, err := inventory.RestoreProduct(
		p.ID(), p.Name(), p.Category(), p.StockQuantity(), p.LowStockThreshold(),
		p.Rate(), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return clone
}
