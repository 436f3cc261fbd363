package encoder

import "errors"

var (
	// ErrEncoding is the root of every error returned by Encode.
	ErrEncoding = errors.New("encoding failed")

	ErrEmptyText       = errors.New("text is empty")
	ErrNoTokens        = errors.New("text has no encodable tokens")
	ErrCountMismatch   = errors.New("encoder returned a different number of vectors than inputs")
	ErrRaggedOutput    = errors.New("encoder returned vectors of different lengths")
	ErrUnknownProvider = errors.New("unknown encoder provider")
	ErrMissingAPIKey   = errors.New("encoder api key is required")
)
