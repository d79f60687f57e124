package events

import "sync"

// Bus is a minimal in-process publish/subscribe primitive. Handlers run
// synchronously on the publisher's goroutine and must swallow their own
// failures: Publish never returns an error, which keeps side channels
// (welcome emails, UI notifications) decoupled from the primary operation.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// Handler consumes a published event payload.
type Handler func(payload interface{})

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the given topic.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers the payload to every handler subscribed to topic,
// in registration order.
func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[topic]))
	copy(hs, b.handlers[topic])
	b.mu.RUnlock()
	for _, h := range hs {
		h(payload)
	}
}
