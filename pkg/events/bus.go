// Package events is a synchronous notification bus.
//
// Publishers call Publish at the boundary of an operation, after its state change is
// committed. Handlers run on the publishing goroutine in subscription order.
package events

import (
	"context"
	"sync"
)

// Topics published by the environment catalog.
const (
	TopicEnvironmentReady   = "environment.ready"
	TopicEnvironmentCleared = "environment.cleared"
	TopicEnvironmentLoaded  = "environment.manual.loaded"
)

// Handler receives a published payload.
type Handler func(ctx context.Context, topic string, payload any)

// Bus fans out payloads to the handlers of a topic.
type Bus struct {
	mu       sync.RWMutex
	next     int
	handlers map[string][]subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]subscription)}
}

// Subscribe registers fn for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[topic]
		for i, s := range subs {
			if s.id == id {
				b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers payload to every handler of topic.
// Handlers may subscribe or unsubscribe while being called.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[topic]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(ctx, topic, payload)
	}
}
