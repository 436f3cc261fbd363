package qdrant

import (
	"github.com/google/uuid"

	"intent-router/internal/faq/repository"
	pkgLog "intent-router/pkg/log"
	pkgQdrant "intent-router/pkg/qdrant"
)

// pointNamespace seeds the UUIDv5 point ids derived from FAQ questions.
var pointNamespace = uuid.MustParse("6f1c3f4e-8a55-4d0e-9a0a-7c2b1d9e4f10")

const (
	payloadQuestion = "question"
	payloadAnswer   = "answer"
)

type implRepository struct {
	l          pkgLog.Logger
	client     pkgQdrant.IQdrant
	collection string
}

// New returns a FAQ store backed by a Qdrant collection.
func New(l pkgLog.Logger, client pkgQdrant.IQdrant, collection string) repository.Repository {
	return &implRepository{
		l:          l,
		client:     client,
		collection: collection,
	}
}

// pointID is stable across ingests so re-ingesting a question overwrites it.
func pointID(question string) string {
	return uuid.NewSHA1(pointNamespace, []byte(question)).String()
}
