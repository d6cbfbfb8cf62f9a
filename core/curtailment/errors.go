package curtailment

import "errors"

var (
	// ErrInvalidInput is returned for blank pastes.
	ErrInvalidInput = errors.New("Invalid input format.")
	// ErrUnknownFormat is returned when no header pattern matches. The message
	// is shown to the user as-is.
	ErrUnknownFormat = errors.New("Unknown table format — please check your pasted data.")
)
