package streamstats

import "errors"

var (
	ErrTriggerDisabled = errors.New("trigger is disabled")
	ErrNoStartAction   = errors.New("trigger has no start action")
	ErrInvalidConfig   = errors.New("invalid config")
)
