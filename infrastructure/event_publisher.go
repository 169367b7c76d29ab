package infrastructure

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"propvest/events"
)

// LogEventPublisher writes protocol events to the structured log.
type LogEventPublisher struct{}

// NewLogEventPublisher creates a new logging event publisher
func NewLogEventPublisher() *LogEventPublisher {
	return &LogEventPublisher{}
}

// Publish logs the event with its type and payload
func (p *LogEventPublisher) Publish(event events.Event) {
	log.WithFields(log.Fields{
		"type":  event.Type(),
		"event": fmt.Sprintf("%+v", event),
	}).Info("protocol event")
}

// NoopEventPublisher is an event publisher that does nothing
// Useful for testing and admin commands where events should not be processed
type NoopEventPublisher struct{}

// NewNoopEventPublisher creates a new no-op event publisher
func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{}
}

// Publish does nothing with the event
func (n *NoopEventPublisher) Publish(event events.Event) {
	// No-op
}
