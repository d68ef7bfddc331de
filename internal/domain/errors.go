package domain

import "errors"

var (
	ErrEmptyQuery = errors.New("empty query")
)

var (
	ErrSessionNotFound = errors.New("session not found")
)
