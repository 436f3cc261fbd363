package chat

import "errors"

var ErrEmptyQuery = errors.New("chat: empty query")
