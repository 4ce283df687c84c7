package order

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// StatusChange is an immutable entry of the order audit trail. OldStatus is
// nil for the entry written at creation. Bill updates write an entry whose old
// and new status are equal.
type StatusChange struct {
	id        kernel.UUID
	orderID   kernel.UUID
	oldStatus *Status
	newStatus Status
	changedBy string
	changedAt time.Time
	notes     string
}

// NewStatusChange creates a fresh audit entry with a generated id.
func NewStatusChange(
	orderID kernel.UUID,
	oldStatus *Status,
	newStatus Status,
	changedBy string,
	changedAt time.Time,
	notes string,
) (StatusChange, error) {
	return RestoreStatusChange(kernel.NewUUID(), orderID, oldStatus, newStatus, changedBy, changedAt, notes)
}

// RestoreStatusChange rebuilds a persisted audit entry.
func RestoreStatusChange(
	id kernel.UUID,
	orderID kernel.UUID,
	oldStatus *Status,
	newStatus Status,
	changedBy string,
	changedAt time.Time,
	notes string,
) (StatusChange, error) {
	var oldErr error
	if oldStatus != nil {
		oldErr = oldStatus.Validate()
	}

	var actorErr error
	if changedBy == "" {
		actorErr = errs.NewValueIsRequiredError("changed by")
	}

	if err := errors.Join(id.Validate(), orderID.Validate(), oldErr, newStatus.Validate(), actorErr); err != nil {
		return StatusChange{}, err
	}

	var old *Status
	if oldStatus != nil {
		s := *oldStatus
		old = &s
	}

	return StatusChange{
		id:        id,
		orderID:   orderID,
		oldStatus: old,
		newStatus: newStatus,
		changedBy: changedBy,
		changedAt: changedAt,
		notes:     notes,
	}, nil
}

func (c StatusChange) ID() kernel.UUID {
	return c.id
}

func (c StatusChange) OrderID() kernel.UUID {
	return c.orderID
}

// OldStatus returns nil for the creation entry.
func (c StatusChange) OldStatus() *Status {
	if c.oldStatus == nil {
		return nil
	}
	s := *c.oldStatus
	return &s
}

func (c StatusChange) NewStatus() Status {
	return c.newStatus
}

func (c StatusChange) ChangedBy() string {
	return c.changedBy
}

func (c StatusChange) ChangedAt() time.Time {
	return c.changedAt
}

func (c StatusChange) Notes() string {
	return c.notes
}
