// Package events publishes chain lifecycle events to listeners outside the event loop.
package events

import (
	"fmt"

	evbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Bus delivers payloads fire-and-forget. Listeners run on their own goroutines,
// so a slow listener never holds up the event loop.
type Bus struct {
	bus    evbus.Bus
	logger *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{bus: evbus.New(), logger: logger}
}

// Publish sends payload to every listener of topic.
func (b *Bus) Publish(topic string, payload any) {
	if !b.bus.HasCallback(topic) {
		return
	}
	b.logger.Debug("publish event", zap.String("topic", topic))
	b.bus.Publish(topic, payload)
}

// Subscribe registers fn for topic. fn must take the payload type published on
// that topic as its only argument.
func (b *Bus) Subscribe(topic string, fn any) error {
	if err := b.bus.SubscribeAsync(topic, fn, false); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// SubscribeSerial registers fn so that calls for topic never overlap.
func (b *Bus) SubscribeSerial(topic string, fn any) error {
	if err := b.bus.SubscribeAsync(topic, fn, true); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

func (b *Bus) Unsubscribe(topic string, fn any) error {
	if err := b.bus.Unsubscribe(topic, fn); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", topic, err)
	}
	return nil
}

// Wait blocks until every listener call in flight has returned.
func (b *Bus) Wait() {
	b.bus.WaitAsync()
}
