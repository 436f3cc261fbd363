package repository

import "errors"

var (
	ErrLengthMismatch = errors.New("faq repository: entries and vectors differ in length")
	ErrInvalidDims    = errors.New("faq repository: vector dimensions must be positive")
)
