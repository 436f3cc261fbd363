// Package answer holds the contract shared by the route handlers the chat
// usecase dispatches to.
package answer

import "context"

// Answerer produces a user-facing reply for a query already routed to it.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Func adapts a plain function to Answerer.
type Func func(ctx context.Context, query string) (string, error)

func (f Func) Answer(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}
