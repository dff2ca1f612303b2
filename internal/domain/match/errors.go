package match

import "errors"

// Sentinel kinds for match errors. Transitions never fail; Result.Err maps
// ignored and rejected events onto these for callers that report them.
var (
	ErrUnknownSport      = errors.New("unknown sport")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrZoneRejected      = errors.New("placement outside permitted zones")
)
