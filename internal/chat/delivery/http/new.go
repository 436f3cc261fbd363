package http

import (
	"intent-router/internal/chat"
	pkgLog "intent-router/pkg/log"
)

type handler struct {
	l  pkgLog.Logger
	uc chat.UseCase
}

// New creates the HTTP handler for chat.
func New(l pkgLog.Logger, uc chat.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
