package faq

import "errors"

var (
	ErrEmptyQuery  = errors.New("faq: empty query")
	ErrInvalidCSV  = errors.New("faq: invalid csv")
	ErrNoEntries   = errors.New("faq: csv has no entries")
	ErrLLMResponse = errors.New("faq: empty LLM response")
)
