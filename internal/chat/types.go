package chat

import (
	"fmt"

	"intent-router/internal/model"
)

// Outcomes recorded for each reply.
const (
	OutcomeAnswered  = "answered"
	OutcomeUnhandled = "unhandled"
	OutcomeError     = "error"
)

const (
	MessageNoRoute = "Sorry, I don't know how to help with that yet. Try asking about our policies or searching the catalog."
	MessageError   = "Sorry, something went wrong while processing your question. Please try again."
)

// MessageNoHandler is the reply for a matched route that has no answerer.
func MessageNoHandler(route string) string {
	return fmt.Sprintf("Sorry, I don't know how to handle '%s' queries yet.", route)
}

type ReplyOutput struct {
	Answer  string
	Intent  model.Intent
	Outcome string
}
