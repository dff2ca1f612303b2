package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrUnknownCommand = errors.New("unknown command type")
	ErrLiveDisabled   = errors.New("live feed disabled")
)
