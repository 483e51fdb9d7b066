package contract

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrTurnInFlight     = errors.New("a turn is already running")
	ErrAgentUnavailable = errors.New("something went wrong, try again later")
)
