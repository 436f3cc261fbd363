package http

import (
	"intent-router/internal/intent"
	pkgLog "intent-router/pkg/log"
)

type handler struct {
	l  pkgLog.Logger
	uc intent.UseCase
}

// New creates the HTTP handler for the intent router.
func New(l pkgLog.Logger, uc intent.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
