package gemini

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("gemini: api key is required")
	ErrEmptyRequest = errors.New("gemini: request has no messages")
	ErrNoCandidates = errors.New("gemini: response has no candidates")
)

// APIError is a non-200 reply from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Body)
}
