package chat

import (
	"context"

	"intent-router/internal/model"
)

type UseCase interface {
	// Reply classifies the query, dispatches it to the route's answerer and
	// always yields a user-facing answer. Only an empty query is an error.
	Reply(ctx context.Context, sc model.Scope, query string) (ReplyOutput, error)

	// Routes lists the route names that have an answerer.
	Routes() []string
}

// Classifier is the part of the intent router chat depends on.
type Classifier interface {
	Classify(ctx context.Context, query string) (model.Intent, error)
}
