package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

const (
	// SystemActor records changes made by the service itself.
	SystemActor = "system"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Delivery holds the shipping metadata of an order. Tracking fields are set by
// StartProcessing, countdown fields by SetOnTheWay.
type Delivery struct {
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time

	// TotalSeconds is the announced delivery countdown.
	TotalSeconds int64
	// StartEpoch is the unix second at which the countdown started.
	StartEpoch int64
	StartedAt  *time.Time
	// LegacyMinutes is max(1, ceil(TotalSeconds/60)), kept for older clients.
	LegacyMinutes int
}

// Billing is the final bill recorded while the order is in Processing.
type Billing struct {
	FinalAmount   kernel.Money
	PaymentStatus PaymentStatus
	BilledBy      string
	BilledAt      time.Time
	Notes         string
}

// State is the full persisted form of an order, used by RestoreOrder.
type State struct {
	ID              kernel.UUID
	Buyer           Buyer
	DeliveryAddress string
	Coordinates     *kernel.GeoPoint
	Total           kernel.Money
	Status          Status
	CreatedAt       time.Time
	StatusUpdatedAt time.Time
	Delivery        Delivery
	ConfirmedBy     string
	DeliveredBy     string
	Billing         *Billing
	Items           []Item
	Version         int64
}

// Order is the aggregate root of the order lifecycle. It owns its items, its
// status and its billing data; nothing outside the aggregate mutates them.
//
// Order follows these invariants:
//   - An order always has at least one item
//   - Status changes follow the graph documented on Status, except ForceStatus
//   - Every status change is recorded as a StatusChange
//   - Deliver requires a final bill; only ForceStatus reaches Delivered without one
//
// Status changes and domain events are buffered on the aggregate and drained by
// the application layer through PullStatusChanges and PullDomainEvents.
type Order struct {
	id              kernel.UUID
	buyer           Buyer
	deliveryAddress string
	coordinates     *kernel.GeoPoint
	total           kernel.Money
	status          Status
	createdAt       time.Time
	statusUpdatedAt time.Time
	delivery        Delivery
	confirmedBy     string
	deliveredBy     string
	billing         *Billing
	items           []Item

	// version is the persisted optimistic concurrency counter
	version int64

	changes []StatusChange
	events  []kernel.DomainEvent

	isConstructed bool
}

// NewOrder places a new order in Pending status.
//
// The delivery address falls back to the buyer's address when blank. The total
// is taken as supplied by the caller; it is only recomputed on edit.
//
// Example:
//
//	buyer, _ := order.NewBuyer(buyerID, "Asha", "+91 98450 00000", "12 Lake Rd")
//	item, _ := order.NewItem(productID, "Mineral Water 1L", rate, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), buyer, "", nil, total, []order.Item{item}, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//
// The creation is recorded as a StatusChange from nil to Pending and a
// PlacedEvent is raised for the administrators.
func NewOrder(
	id kernel.UUID,
	buyer Buyer,
	deliveryAddress string,
	coordinates *kernel.GeoPoint,
	total kernel.Money,
	items []Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:          Pending,
		createdAt:       now,
		statusUpdatedAt: now,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyer(buyer),
		o.setCoordinates(coordinates),
		o.setTotal(total),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.setDeliveryAddress(deliveryAddress); err != nil {
		return nil, err
	}

	if err := o.recordChange(nil, Pending, SystemActor, now, "Order created"); err != nil {
		return nil, err
	}

	o.raise(PlacedEvent{
		OrderID:    o.id,
		BuyerID:    o.buyer.ID(),
		BuyerName:  o.buyer.Name(),
		Total:      o.total,
		ItemCount:  len(o.items),
		OccurredAt: now,
	})

	return o, nil
}

// RestoreOrder rebuilds an order from persistence without recording changes.
func RestoreOrder(state State) (*Order, error) {
	o := &Order{
		deliveryAddress: state.DeliveryAddress,
		createdAt:       state.CreatedAt,
		statusUpdatedAt: state.StatusUpdatedAt,
		delivery:        state.Delivery,
		confirmedBy:     state.ConfirmedBy,
		deliveredBy:     state.DeliveredBy,
		version:         state.Version,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setBuyer(state.Buyer),
		o.setCoordinates(state.Coordinates),
		o.setTotal(state.Total),
		o.setStatus(state.Status),
		o.setBilling(state.Billing),
		o.setItems(state.Items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Buyer() Buyer {
	return o.buyer
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// Coordinates returns nil when the buyer did not share a location.
func (o *Order) Coordinates() *kernel.GeoPoint {
	if o.coordinates == nil {
		return nil
	}
	point := *o.coordinates
	return &point
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) StatusUpdatedAt() time.Time {
	return o.statusUpdatedAt
}

func (o *Order) Delivery() Delivery {
	return o.delivery
}

func (o *Order) ConfirmedBy() string {
	return o.confirmedBy
}

func (o *Order) DeliveredBy() string {
	return o.deliveredBy
}

// Billing returns a copy of the final bill, or nil when the order is not billed yet.
func (o *Order) Billing() *Billing {
	if o.billing == nil {
		return nil
	}
	b := *o.billing
	return &b
}

// Items returns a copy of the order lines in their original order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Version() int64 {
	return o.version
}

// Snapshot returns the persisted form of the order. It is the inverse of
// RestoreOrder.
func (o *Order) Snapshot() State {
	return State{
		ID:              o.id,
		Buyer:           o.buyer,
		DeliveryAddress: o.deliveryAddress,
		Coordinates:     o.Coordinates(),
		Total:           o.total,
		Status:          o.status,
		CreatedAt:       o.createdAt,
		StatusUpdatedAt: o.statusUpdatedAt,
		Delivery:        o.delivery,
		ConfirmedBy:     o.confirmedBy,
		DeliveredBy:     o.deliveredBy,
		Billing:         o.Billing(),
		Items:           o.Items(),
		Version:         o.version,
	}
}

// AdvanceVersion is called by persistence after the order was written with
// its current version as the expected one.
func (o *Order) AdvanceVersion() {
	o.version++
}

// Confirm accepts a pending order. Stock deduction is the caller's concern and
// must happen in the same unit of work.
func (o *Order) Confirm(actor string, now time.Time) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	if err = o.transition(newStatus, actor, now, "Order confirmed, stock deducted"); err != nil {
		return err
	}
	o.confirmedBy = actor
	o.raiseStatusChanged(now)
	return nil
}

// Edit replaces the whole item set and recomputes the total with tax and the
// delivery fee. Nil address or phone leave the current value untouched; a
// blank address falls back to the buyer's address.
func (o *Order) Edit(items []Item, deliveryAddress, phone *string) error {
	if err := o.status.ValidateEditable(); err != nil {
		return err
	}

	if err := o.setItems(items); err != nil {
		return err
	}
	o.total = CalculateTotal(o.items)

	if deliveryAddress != nil {
		if err := o.setDeliveryAddress(*deliveryAddress); err != nil {
			return err
		}
	}

	if phone != nil {
		o.buyer = o.buyer.withPhone(strings.TrimSpace(*phone))
	}

	return nil
}

// StartProcessing hands a confirmed order over to a carrier.
func (o *Order) StartProcessing(trackingNumber, carrier string, estimatedDelivery *time.Time, actor string, now time.Time) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	newStatus, err := o.status.StartProcessing()
	if err != nil {
		return err
	}

	note := "Order in processing with tracking: " + trackingNumber
	if err = o.transition(newStatus, actor, now, note); err != nil {
		return err
	}

	o.delivery.TrackingNumber = trackingNumber
	o.delivery.Carrier = strings.TrimSpace(carrier)
	o.delivery.EstimatedDelivery = estimatedDelivery
	return nil
}

// SetOnTheWay sends a confirmed order out with a delivery countdown.
// LegacyMinutes is derived as max(1, ceil(totalSeconds/60)).
func (o *Order) SetOnTheWay(totalSeconds int64, actor string, now time.Time) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	newStatus, err := o.status.StartProcessing()
	if err != nil {
		return err
	}

	if totalSeconds <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total delivery seconds",
			fmt.Errorf("%d is not greater than 0", totalSeconds),
		)
	}

	note := fmt.Sprintf("Order set to On The Way with delivery time: %d seconds", totalSeconds)
	if err = o.transition(newStatus, actor, now, note); err != nil {
		return err
	}

	startedAt := now
	o.delivery.TotalSeconds = totalSeconds
	o.delivery.StartEpoch = now.Unix()
	o.delivery.StartedAt = &startedAt
	o.delivery.LegacyMinutes = LegacyMinutes(totalSeconds)
	o.raiseStatusChanged(now)
	return nil
}

// ApplyBill records the final bill. The payment status is computed by the
// billing reconciler; ApplyBill re-checks the state and the upper bound so the
// aggregate never holds a bill above its total.
func (o *Order) ApplyBill(amount kernel.Money, paymentStatus PaymentStatus, notes, actor string, now time.Time) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	if err := o.status.ValidateBillable(); err != nil {
		return err
	}

	if err := errors.Join(amount.Validate(), paymentStatus.Validate()); err != nil {
		return err
	}

	if amount.Cmp(o.total) > 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"final bill amount",
			fmt.Errorf("%s exceeds order total %s", amount, o.total),
		)
	}

	notes = strings.TrimSpace(notes)
	note := fmt.Sprintf("Bill updated: ₹%s (Original: ₹%s). Payment Status: %s", amount, o.total, paymentStatus)
	if notes != "" {
		note += ". Notes: " + notes
	}

	current := o.status
	if err := o.recordChange(&current, current, actor, now, note); err != nil {
		return err
	}

	o.billing = &Billing{
		FinalAmount:   amount,
		PaymentStatus: paymentStatus,
		BilledBy:      actor,
		BilledAt:      now,
		Notes:         notes,
	}

	o.raise(BillUpdatedEvent{
		OrderID:       o.id,
		BuyerID:       o.buyer.ID(),
		Status:        o.status,
		Amount:        amount,
		PaymentStatus: paymentStatus,
		OccurredAt:    now,
	})
	return nil
}

// Deliver completes a billed order. It reports false without touching the
// order when it is already delivered.
func (o *Order) Deliver(actor string, now time.Time) (bool, error) {
	if o.status == Delivered {
		return false, nil
	}

	if err := requireActor(actor); err != nil {
		return false, err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return false, err
	}

	if o.billing == nil {
		return false, errs.NewValueIsRequiredErrorWithCause(
			"final bill amount",
			errors.New("the final bill must be set before delivery"),
		)
	}

	note := fmt.Sprintf("Order delivered. Final bill: ₹%s, Payment status: %s",
		o.billing.FinalAmount, o.billing.PaymentStatus)
	if err = o.transition(newStatus, actor, now, note); err != nil {
		return false, err
	}

	o.deliveredBy = actor
	o.raiseStatusChanged(now)
	return true, nil
}

// Cancel abandons a non-terminal order. Whether stock must be restored is
// decided by the caller from the status before the call (see Status.HoldsStock).
func (o *Order) Cancel(actor, reason string, now time.Time) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "No reason provided"
	}

	if err = o.transition(newStatus, actor, now, "Order canceled: "+reason); err != nil {
		return err
	}

	o.raiseStatusChanged(now)
	return nil
}

// ForceStatus is the administrative override. It skips lifecycle validation and
// has no stock side effects. The change is always audited; the buyer is only
// notified when the status actually changed to Confirmed, Canceled or Delivered.
func (o *Order) ForceStatus(status Status, actor string, now time.Time) error {
	if err := errors.Join(requireActor(actor), status.Validate()); err != nil {
		return err
	}

	changed := o.status != status
	if err := o.transition(status, actor, now, "Status updated"); err != nil {
		return err
	}

	if changed && (status == Confirmed || status == Canceled || status == Delivered) {
		o.raiseStatusChanged(now)
	}
	return nil
}

// PullStatusChanges returns and clears the audit entries recorded since the
// order was created or restored.
func (o *Order) PullStatusChanges() []StatusChange {
	changes := o.changes
	o.changes = nil
	return changes
}

// PullDomainEvents returns and clears the buffered domain events.
func (o *Order) PullDomainEvents() []kernel.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

// LegacyMinutes converts a countdown in seconds to whole minutes, rounding up,
// with a minimum of one minute.
func LegacyMinutes(totalSeconds int64) int {
	minutes := int((totalSeconds + 59) / 60)
	if minutes < 1 {
		return 1
	}
	return minutes
}

func (o *Order) transition(newStatus Status, actor string, now time.Time, note string) error {
	old := o.status
	if err := o.recordChange(&old, newStatus, actor, now, note); err != nil {
		return err
	}

	o.status = newStatus
	o.statusUpdatedAt = now
	return nil
}

func (o *Order) recordChange(old *Status, newStatus Status, actor string, now time.Time, note string) error {
	change, err := NewStatusChange(o.id, old, newStatus, actor, now, note)
	if err != nil {
		return err
	}
	o.changes = append(o.changes, change)
	return nil
}

func (o *Order) raiseStatusChanged(now time.Time) {
	o.raise(StatusChangedEvent{
		OrderID:       o.id,
		BuyerID:       o.buyer.ID(),
		Status:        o.status,
		LegacyMinutes: o.delivery.LegacyMinutes,
		OccurredAt:    now,
	})
}

func (o *Order) raise(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func requireActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyer(buyer Buyer) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	o.buyer = buyer
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		address = o.buyer.Address()
	}
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setCoordinates(coordinates *kernel.GeoPoint) error {
	if coordinates == nil {
		o.coordinates = nil
		return nil
	}
	if err := coordinates.Validate(); err != nil {
		return err
	}
	point := *coordinates
	o.coordinates = &point
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("total", err)
	}
	o.total = total
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setBilling(billing *Billing) error {
	if billing == nil {
		o.billing = nil
		return nil
	}
	if err := errors.Join(billing.FinalAmount.Validate(), billing.PaymentStatus.Validate()); err != nil {
		return err
	}
	b := *billing
	o.billing = &b
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
