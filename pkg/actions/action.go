package actions

import (
	"setupdeps/pkg/log"
	"setupdeps/pkg/system"
)

// Action represents a single, discrete change to the environment.
// Actions are applied once, in order. There is no undo.
type Action interface {
	// Description returns a human-readable string of what the action does.
	Description() string
	// Apply executes the action.
	Apply(runner system.CommandRunner, logger log.Logger) error
	// ExecutionDetails returns a slice of strings describing the low-level operations.
	ExecutionDetails() []string
}
