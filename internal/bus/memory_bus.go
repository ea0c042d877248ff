package bus

import (
	"context"
	"sync"

	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
)

// memoryBus is an in-process Bus for single-node deployments and tests.
type memoryBus struct {
	log *logger.Logger

	mu       sync.RWMutex
	handlers map[string][]func(env events.Envelope)
	closed   bool
}

func NewMemoryBus(log *logger.Logger) Bus {
	return &memoryBus{
		log:      log.With("service", "MemoryFactBus"),
		handlers: make(map[string][]func(env events.Envelope)),
	}
}

func (b *memoryBus) Publish(ctx context.Context, topic string, env events.Envelope) error {
	b.mu.RLock()
	handlers := append([]func(env events.Envelope){}, b.handlers[topic]...)
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return nil
	}
	for _, h := range handlers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		h(env)
	}
	return nil
}

func (b *memoryBus) StartForwarder(ctx context.Context, topic string, onMsg func(env events.Envelope)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], onMsg)
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[string][]func(env events.Envelope))
	return nil
}
