// Package runner defines interfaces for command execution.
// This package exists to break import cycles between testing and system packages.
package runner

// CommandRunner runs an external program with the given arguments.
// No shell is involved, so arguments are passed through verbatim.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
}
