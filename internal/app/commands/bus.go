package commands

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryBus is a key-indexed in-process command bus.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string]func(ctx context.Context, cmd Command) (any, error)
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[string]func(ctx context.Context, cmd Command) (any, error))}
}

// RegisterHandler binds a typed handler to a command key.
func RegisterHandler[C Command, R any](bus *InMemoryBus, key string, handler Handler[C, R]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[key] = func(ctx context.Context, cmd Command) (any, error) {
		typed, ok := cmd.(C)
		if !ok {
			return nil, fmt.Errorf("%w: key %q got %T", ErrInvalidCommand, key, cmd)
		}
		return handler.Handle(ctx, typed)
	}
}

func (b *InMemoryBus) Dispatch(ctx context.Context, cmd Command) (any, error) {
	b.mu.RLock()
	handler, ok := b.handlers[cmd.Key()]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHandlerNotFound, cmd.Key())
	}
	return handler(ctx, cmd)
}

var _ Bus = (*InMemoryBus)(nil)
