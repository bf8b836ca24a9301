package guard

import (
	"context"
	"sync"

	"cdp/core"
)

type contextKey struct{}

// Guard serializes mutating calls and rejects the ones that start
// from inside a call already holding it
type Guard struct {
	sem chan struct{}
}

// New new guard
func New() *Guard {
	return &Guard{sem: make(chan struct{}, 1)}
}

// Enter acquire the guard, returns ErrReentrantCall when ctx already holds it.
// A caller waiting for the guard gives up with ctx.Err() once ctx is done.
// The returned context marks the call chain and must be passed to nested calls.
func (g *Guard) Enter(ctx context.Context) (context.Context, func(), error) {
	if Holds(ctx, g) {
		return ctx, func() {}, core.ErrReentrantCall
	}

	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx, func() {}, ctx.Err()
	}

	ctx = context.WithValue(ctx, contextKey{}, append(held(ctx), g))

	var once sync.Once
	return ctx, func() { once.Do(func() { <-g.sem }) }, nil
}

// Holds report whether ctx runs inside g
func Holds(ctx context.Context, g *Guard) bool {
	for _, h := range held(ctx) {
		if h == g {
			return true
		}
	}

	return false
}

func held(ctx context.Context) []*Guard {
	guards, _ := ctx.Value(contextKey{}).([]*Guard)
	return append([]*Guard(nil), guards...)
}
