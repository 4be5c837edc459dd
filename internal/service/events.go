package service

// EventPublisher pushes fleet events to subscribers (dashboards, edge
// listeners). Publishing is fire-and-forget; a nil-backed publisher is
// a valid no-op.
type EventPublisher interface {
	Publish(topic string, payload interface{}) error
}
