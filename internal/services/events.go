package services

import "log"

// Event types published by the services.
const (
	EventVoteCast    = "vote.cast"
	EventBookDeleted = "book.deleted"
	EventUserDeleted = "user.deleted"
)

// EventPublisher sends domain events to a message broker.
type EventPublisher interface {
	PublishEvent(eventType string, payload map[string]interface{}) error
}

// publish sends the event if a publisher is configured. Failures are logged only:
// the change is already stored and the request must not fail because of the broker.
func publish(p EventPublisher, eventType string, payload map[string]interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
