package mocks

import (
	"context"
	"sync"

	"kampus/infras/otel"
)

// Otel hands out recording scopes and keeps them for inspection.
type Otel struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	defer o.mu.Unlock()

	scope := &Scope{Name: spanName}
	o.scopes = append(o.scopes, scope)

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the most recent scope opened with spanName, or nil.
func (o *Otel) Scope(spanName string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := len(o.scopes) - 1; i >= 0; i-- {
		if o.scopes[i].Name == spanName {
			return o.scopes[i]
		}
	}

	return nil
}

func NewOtel() otel.Otel {
	return &Otel{}
}

func NewRecorder() *Otel {
	return &Otel{}
}
