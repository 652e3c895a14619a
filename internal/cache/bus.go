package cache

import (
	"context"
	"log/slog"
	"sync"
)

// Event marks a successful mutation. Subscribers translate event types into
// the cache keys they invalidate, so the relationships between resources
// ("deleting a role also stales the assignment lists") live in one place
// per module instead of being re-derived at every call site.
type Event struct {
	Type       string
	ResourceID string
}

type Handler func(ctx context.Context, event Event)

type Bus struct {
	handlers map[string][]Handler
	logger   *slog.Logger
	mu       sync.RWMutex
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Debug("invalidation handler registered",
		"event_type", eventType,
		"total_handlers", len(b.handlers[eventType]))
}

// Publish runs handlers synchronously: invalidation must complete before the
// mutation's HTTP response is written, or a follow-up read could be served a
// stale list.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers, exists := b.handlers[event.Type]
	b.mu.RUnlock()

	if !exists || len(handlers) == 0 {
		b.logger.Debug("no handlers for event type", "event_type", event.Type)
		return
	}

	for _, handler := range handlers {
		handler(ctx, event)
	}

	b.logger.Debug("invalidation event published",
		"event_type", event.Type,
		"resource_id", event.ResourceID,
		"handlers_count", len(handlers))
}
