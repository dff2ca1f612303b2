package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchExists   = errors.New("match already exists")
	ErrNotStarted    = errors.New("service not started")
	ErrInvalidMatch  = errors.New("invalid match")
)
