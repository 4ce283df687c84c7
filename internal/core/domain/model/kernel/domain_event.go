package kernel

// DomainEvent is raised by an aggregate during a state change and published
// once the enclosing unit of work has committed.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
}
