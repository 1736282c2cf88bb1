package model

import "errors"

// Sentinel errors shared across stores and services. Callers match with
// errors.Is; the HTTP layer maps them onto status codes.
var (
	// ErrNotFound marks lookups for seasons, uploads, periods, events, or
	// jobs that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState marks operations rejected by lifecycle rules, such as
	// processing an event that is already analyzing.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnknownCategory marks category input outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownStatus marks event status input outside the closed set.
	ErrUnknownStatus = errors.New("unknown event status")

	// ErrSeasonInconsistent marks a season whose uploads exist but whose
	// periods are missing. Rebuilds run in a single transaction, so this
	// state indicates external interference and is treated as fatal.
	ErrSeasonInconsistent = errors.New("season has uploads but no periods")
)
