package client

import "errors"

var (
	ErrUnavailable  = errors.New("gateway unavailable")
	ErrUnauthorized = errors.New("gateway rejected api key")
)
