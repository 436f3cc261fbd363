package repository

import "errors"

var (
	ErrEmptyEncoderID = errors.New("encoder id is empty")
	ErrInvalidVector  = errors.New("invalid vector")
)
