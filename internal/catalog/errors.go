package catalog

import "errors"

var (
	ErrEmptyQuery  = errors.New("catalog: empty query")
	ErrNoSQL       = errors.New("catalog: no SQL in LLM response")
	ErrUnsafeSQL   = errors.New("catalog: only a single SELECT statement is allowed")
	ErrInvalidCSV  = errors.New("catalog: invalid csv")
	ErrLLMResponse = errors.New("catalog: empty LLM response")
)
