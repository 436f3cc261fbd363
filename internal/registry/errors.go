package registry

import "errors"

var (
	ErrNoRoutes       = errors.New("registry has no routes")
	ErrEmptyRouteName = errors.New("route name is empty")
	ErrDuplicateRoute = errors.New("duplicate route name")
	ErrNoUtterances   = errors.New("route has no utterances")
	ErrBadThreshold   = errors.New("route threshold must be within [-1, 1]")
)
