package queries

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryBus is a key-indexed in-process query bus.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string]func(ctx context.Context, query Query) (any, error)
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[string]func(ctx context.Context, query Query) (any, error))}
}

// RegisterHandler binds a typed handler to a query key. Registering the same
// key twice replaces the previous handler.
func RegisterHandler[Q Query, R any](bus *InMemoryBus, key string, handler Handler[Q, R]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[key] = func(ctx context.Context, query Query) (any, error) {
		typed, ok := query.(Q)
		if !ok {
			return nil, fmt.Errorf("%w: key %q got %T", ErrInvalidQuery, key, query)
		}
		return handler.Handle(ctx, typed)
	}
}

func (b *InMemoryBus) Ask(ctx context.Context, query Query) (any, error) {
	b.mu.RLock()
	handler, ok := b.handlers[query.Key()]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHandlerNotFound, query.Key())
	}
	return handler(ctx, query)
}

var _ Bus = (*InMemoryBus)(nil)
